package ffn

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/flint-ml/flint/internal/layer"
	"github.com/flint-ml/flint/internal/loss"
	"github.com/flint-ml/flint/internal/weights"
)

// TestNetwork_SaveLoadRoundTrip tests that a persisted network restores
// with identical parameters and identical predictions.
func TestNetwork_SaveLoadRoundTrip(t *testing.T) {
	n := New(loss.NewCrossEntropy(), weights.NewGaussian(0, 0.3))
	n.Add(layer.NewLinear(4))
	n.Add(layer.NewSigmoid())
	n.Add(layer.NewDropout(0.2))
	n.Add(layer.NewLinear(1))
	n.Add(layer.NewSigmoid())

	predictors := mat.NewDense(3, 5, nil)
	for j := 0; j < 5; j++ {
		for i := 0; i < 3; i++ {
			predictors.Set(i, j, float64(i-j)/4)
		}
	}
	original, err := n.Predict(predictors, 0)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "network.json")
	require.NoError(t, n.Save(path))

	restored, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Unconfigured, restored.state)
	assert.Equal(t, n.Parameters(), restored.Parameters())
	assert.Equal(t, n.InputDimensions(), restored.InputDimensions())
	require.Len(t, restored.Layers(), 5)
	assert.Equal(t, 0.2, restored.Layers()[2].(*layer.Dropout).Ratio())

	reloaded, err := restored.Predict(predictors, 0)
	require.NoError(t, err)
	assert.True(t, mat.Equal(original, reloaded))
}

// TestNetwork_LoadRestoresTrainingMode tests that a network saved in
// training mode comes back with mode-dependent layers actually training,
// not just the flag set.
func TestNetwork_LoadRestoresTrainingMode(t *testing.T) {
	n := New(nil, nil)
	n.Add(layer.NewDropout(0.5))
	n.SetNetworkMode(true)
	require.NoError(t, n.Forward(mat.NewDense(1, 4, nil), &mat.Dense{}))

	path := filepath.Join(t.TempDir(), "network.json")
	require.NoError(t, n.Save(path))

	restored, err := Load(path)
	require.NoError(t, err)
	assert.True(t, restored.Training())

	const samples = 400
	input := mat.NewDense(1, samples, nil)
	for j := 0; j < samples; j++ {
		input.Set(0, j, 1)
	}
	results := &mat.Dense{}
	require.NoError(t, restored.Forward(input, results))

	dropped := 0
	for j := 0; j < samples; j++ {
		if results.At(0, j) == 0 {
			dropped++
		}
	}
	assert.Positive(t, dropped, "restored dropout must keep masking in training mode")
}

// TestNetwork_MarshalStableLayout tests the persisted field layout other
// tooling depends on.
func TestNetwork_MarshalStableLayout(t *testing.T) {
	n := New(nil, weights.NewConst(0.5))
	n.Add(layer.NewLinear(2))
	n.SetInputDimensions(3)
	require.NoError(t, n.Forward(mat.NewDense(3, 1, nil), &mat.Dense{}))

	data, err := json.Marshal(n)
	require.NoError(t, err)

	var state map[string]any
	require.NoError(t, json.Unmarshal(data, &state))
	assert.Equal(t, "mean_squared_error", state["outputLayer"])
	assert.Contains(t, state, "initializer")
	assert.Contains(t, state, "layers")
	assert.Contains(t, state, "parameters")
	assert.Contains(t, state, "inputDimensions")
}

// TestNetwork_UnmarshalUnknownLayer tests that corrupt state is rejected.
func TestNetwork_UnmarshalUnknownLayer(t *testing.T) {
	data := []byte(`{"outputLayer":"mean_squared_error","initializer":{"type":"const"},"layers":[{"type":"attention"}]}`)
	err := json.Unmarshal(data, &Network{})
	assert.Error(t, err)
}

// TestLoad_MissingFile tests the file error path.
func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
