package ffn

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/flint-ml/flint/internal/layer"
	"github.com/flint-ml/flint/internal/loss"
	"github.com/flint-ml/flint/internal/weights"
)

// networkState is the persisted layout of a network: output layer,
// initialization rule, the layer sequence configuration, the flat
// parameter buffer, input dimensions, and the training-mode flag. Cached
// activation buffers and readiness state are never persisted; loading
// always forces re-resolution and re-aliasing on first use.
type networkState struct {
	OutputLayer     string       `json:"outputLayer"`
	Initializer     weights.Spec `json:"initializer"`
	Layers          []layer.Spec `json:"layers"`
	Parameters      []float64    `json:"parameters"`
	InputDimensions []int        `json:"inputDimensions,omitempty"`
	Training        bool         `json:"training"`
}

// MarshalJSON encodes the network's persistent state.
func (n *Network) MarshalJSON() ([]byte, error) {
	initSpec, err := weights.Encode(n.initializer)
	if err != nil {
		return nil, err
	}
	layers := n.net.Layers()
	specs := make([]layer.Spec, len(layers))
	for i, l := range layers {
		specs[i], err = layer.Encode(l)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(networkState{
		OutputLayer:     n.outputLayer.Type(),
		Initializer:     initSpec,
		Layers:          specs,
		Parameters:      n.parameters,
		InputDimensions: n.inputDimensions,
		Training:        n.training,
	})
}

// UnmarshalJSON restores a network from its persistent state. Weight
// views, cached activations and readiness flags are reset; the first
// numeric operation re-resolves dimensions and rebinds the parameter
// buffer.
func (n *Network) UnmarshalJSON(data []byte) error {
	var state networkState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("ffn: decoding network state: %w", err)
	}

	outputLayer, err := loss.Decode(state.OutputLayer)
	if err != nil {
		return err
	}
	initializer, err := weights.Decode(state.Initializer)
	if err != nil {
		return err
	}
	sequence := layer.NewSequence()
	for _, spec := range state.Layers {
		l, err := layer.Decode(spec)
		if err != nil {
			return err
		}
		sequence.Add(l)
	}

	n.net = sequence
	n.outputLayer = outputLayer
	n.initializer = initializer
	n.parameters = state.Parameters
	n.inputDimensions = state.InputDimensions
	n.SetNetworkMode(state.Training)

	n.networkOutput = nil
	n.networkDelta = nil
	n.errorGrad = nil
	n.state = Unconfigured
	return nil
}

// Save writes the network's persistent state to a file as JSON.
func (n *Network) Save(path string) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a network from a file written by Save.
func Load(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	network := &Network{}
	if err := json.Unmarshal(data, network); err != nil {
		return nil, err
	}
	return network, nil
}
