package ffn

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/flint-ml/flint/internal/layer"
	"github.com/flint-ml/flint/internal/loss"
	"github.com/flint-ml/flint/internal/optim"
	"github.com/flint-ml/flint/internal/weights"
)

// State tracks how much of the network's lazy initialization has run.
// Every public operation funnels through an invariant gate that advances
// the state as far as the operation needs; mutating the configuration
// (adding a layer, changing input dimensions, restoring persisted state)
// winds it back.
type State uint8

const (
	// Unconfigured: input dimensions have not been propagated through the
	// layer sequence (or were invalidated).
	Unconfigured State = iota

	// DimensionsResolved: every layer knows its output shape and weight
	// count, but the layers' weight views may not point into the current
	// parameter buffer.
	DimensionsResolved

	// WeightsBound: the parameter buffer is sized to the aggregate weight
	// count and every layer's weight view aliases its slice of it.
	WeightsBound

	// Ready: the invariant gate has fully validated the network for
	// numeric operations.
	Ready
)

// Network is a feed-forward neural network container.
//
// It owns an ordered sequence of layers, the single flat parameter buffer
// holding every trainable weight, the input dimension metadata, and the
// cached activation and error buffers the numeric operations share. All
// layer weight views are non-owning aliases into the parameter buffer, so
// an optimizer mutating the buffer in place between gradient calls is
// immediately visible to every layer.
//
// A Network is constructed empty; layers are appended with Add before
// training or inference begins. Shape inference and weight allocation are
// lazy: they run the first time a numeric operation needs them, and rerun
// only when the configuration changes.
//
// A Network is not safe for concurrent use. All methods assume a single
// logical thread drives the container; concurrent calls on the same
// instance are a precondition violation.
type Network struct {
	net         *layer.Sequence
	outputLayer loss.Loss
	initializer weights.Initializer

	parameters      []float64
	inputDimensions []int

	networkOutput *mat.Dense
	networkDelta  *mat.Dense
	errorGrad     *mat.Dense

	training bool
	state    State

	// Invocation counts for the expensive lazy steps; used to verify the
	// invariant gate is idempotent.
	dimensionUpdates      int
	weightInitializations int
}

// New creates an empty network with the given output layer and weight
// initialization rule. A nil outputLayer defaults to mean squared error; a
// nil initializer defaults to uniform random weights in [-1, 1).
func New(outputLayer loss.Loss, initializer weights.Initializer) *Network {
	if outputLayer == nil {
		outputLayer = loss.NewMeanSquaredError()
	}
	if initializer == nil {
		initializer = weights.NewRandom(-1, 1)
	}
	return &Network{
		net:         layer.NewSequence(),
		outputLayer: outputLayer,
		initializer: initializer,
	}
}

// Add appends a layer to the network. The next numeric operation
// re-propagates dimensions and, if the aggregate weight count changed,
// reallocates and reinitializes the parameter buffer.
func (n *Network) Add(l layer.Layer) {
	n.net.Add(l)
	n.state = Unconfigured
}

// Layers returns the ordered layer slice.
func (n *Network) Layers() []layer.Layer { return n.net.Layers() }

// SetInputDimensions declares the shape of one input example, for example
// (width, height, channels) for image layers. The product of the
// dimensions must equal the row count of every input batch. Changing the
// dimensions forces full re-propagation on the next operation.
func (n *Network) SetInputDimensions(dims ...int) {
	n.inputDimensions = append([]int(nil), dims...)
	n.state = Unconfigured
}

// InputDimensions returns a copy of the configured input dimensions.
func (n *Network) InputDimensions() []int {
	return append([]int(nil), n.inputDimensions...)
}

// Parameters returns the flat parameter buffer. The slice is live: every
// layer's weight view aliases it, and mutating it changes the network.
func (n *Network) Parameters() []float64 { return n.parameters }

// WeightSize reports the aggregate weight count of all layers, resolving
// dimensions first if needed. It fails if the network is empty or no input
// dimensions are available to resolve shapes with.
func (n *Network) WeightSize() (int, error) {
	if n.net.Len() == 0 {
		return 0, &ConfigurationError{Op: "WeightSize", Reason: "cannot use a network with no layers"}
	}
	if n.state < DimensionsResolved {
		if len(n.inputDimensions) == 0 {
			return 0, &ConfigurationError{Op: "WeightSize", Reason: "input dimensions are not set"}
		}
		if err := n.updateDimensions("WeightSize", 0); err != nil {
			return 0, err
		}
	}
	return n.net.WeightSize(), nil
}

// SetNetworkMode switches every layer uniformly between training and
// inference behavior.
func (n *Network) SetNetworkMode(training bool) {
	n.training = training
	n.net.SetTraining(training)
}

// Training reports whether the network is in training mode.
func (n *Network) Training() bool { return n.training }

// Reset discards the parameter buffer and re-runs the full lazy
// initialization, using inputDimensionality as the input size, or the
// configured input dimensions when it is 0.
func (n *Network) Reset(inputDimensionality int) error {
	n.parameters = nil
	n.state = Unconfigured
	if inputDimensionality == 0 {
		if len(n.inputDimensions) == 0 {
			return &ConfigurationError{Op: "Reset", Reason: "no input dimensionality given and input dimensions are not set"}
		}
		inputDimensionality = flatSize(n.inputDimensions)
	}
	return n.checkNetwork("Reset", inputDimensionality, true, false)
}

// Forward evaluates the network on an input batch (features × batch),
// writing the output batch (output size × batch) into results. The output
// is also cached internally for a subsequent Backward call. If results is
// the network's own cache no copy occurs.
func (n *Network) Forward(input mat.Matrix, results *mat.Dense) error {
	return n.ForwardRange(input, results, 0, n.net.Len()-1)
}

// ForwardRange evaluates only layers [begin, end] of the sequence. An
// out-of-order range (end < begin) is a no-op, not an error, but the
// network is still validated first. Layer-wise operations use this
// internally; most callers want Forward.
func (n *Network) ForwardRange(input mat.Matrix, results *mat.Dense, begin, end int) error {
	rows, cols := input.Dims()
	if err := n.checkNetwork("Forward", rows, false, false); err != nil {
		return err
	}
	if end < begin {
		return nil
	}

	n.networkOutput = ensureDense(n.networkOutput, n.net.OutputSizeOf(end), cols)
	n.net.Forward(input, n.networkOutput, begin, end)

	if results != n.networkOutput {
		copyDense(results, n.networkOutput)
	}
	return nil
}

// Backward runs a backward pass for the most recent Forward call: it
// computes the scalar objective (output-layer loss plus any
// layer-contributed auxiliary loss), seeds the output-layer error
// gradient, propagates the delta through every layer, and computes the
// parameter gradient into gradient, which must have exactly WeightSize
// elements laid out like the parameter buffer.
//
// input must be the same batch the preceding Forward consumed; only its
// shape is verified against the cached output, the contents are the
// caller's responsibility.
func (n *Network) Backward(input, targets mat.Matrix, gradient []float64) (float64, error) {
	if n.networkOutput == nil {
		return 0, &ConfigurationError{Op: "Backward", Reason: "no cached network output; call Forward first"}
	}
	_, outCols := n.networkOutput.Dims()
	inRows, inCols := input.Dims()
	if inCols != outCols {
		return 0, &ConfigurationError{
			Op:     "Backward",
			Reason: fmt.Sprintf("cached network output has %d columns but the input batch has %d", outCols, inCols),
		}
	}
	if len(gradient) != len(n.parameters) {
		return 0, &ConfigurationError{
			Op:     "Backward",
			Reason: fmt.Sprintf("gradient has %d elements but the parameter buffer has %d", len(gradient), len(n.parameters)),
		}
	}

	objective := n.outputLayer.Forward(n.networkOutput, targets) + n.net.Loss()

	outRows, _ := n.networkOutput.Dims()
	n.errorGrad = ensureDense(n.errorGrad, outRows, outCols)
	n.outputLayer.Backward(n.networkOutput, targets, n.errorGrad)

	n.networkDelta = ensureDense(n.networkDelta, inRows, inCols)
	n.net.Backward(input, n.networkOutput, n.errorGrad, n.networkDelta)

	n.net.Gradient(input, n.errorGrad, gradient)
	return objective, nil
}

// Evaluate computes the objective of the network on the given data without
// touching the parameter gradient.
func (n *Network) Evaluate(predictors, responses mat.Matrix) (float64, error) {
	rows, cols := predictors.Dims()
	if err := n.checkNetwork("Evaluate", rows, false, false); err != nil {
		return 0, err
	}
	n.networkOutput = ensureDense(n.networkOutput, n.net.OutputSize(), cols)
	n.net.Forward(predictors, n.networkOutput, 0, n.net.Len()-1)
	return n.outputLayer.Forward(n.networkOutput, responses) + n.net.Loss(), nil
}

// Train fits the network to the given dataset (predictors and responses
// are column-per-example matrices with equal column counts) by driving the
// optimizer with the network's differentiable objective. It returns the
// optimizer's final objective value.
//
// The parameter buffer is the single point of shared state between the
// network and the optimizer: the optimizer mutates it in place and the
// layers observe the mutation through their weight views.
func (n *Network) Train(predictors, responses *mat.Dense, optimizer optim.Optimizer) (float64, error) {
	n.SetNetworkMode(true)

	_, pCols := predictors.Dims()
	_, rCols := responses.Dims()
	if pCols != rCols {
		return 0, &ConfigurationError{
			Op:     "Train",
			Reason: fmt.Sprintf("predictors have %d columns but responses have %d", pCols, rCols),
		}
	}

	warnMaxIterations(optimizer, pCols)

	rows, _ := predictors.Dims()
	if err := n.checkNetwork("Train", rows, true, true); err != nil {
		return 0, err
	}

	objective, err := NewDatasetObjective(n, predictors, responses)
	if err != nil {
		return 0, err
	}
	return optimizer.Optimize(objective, n.parameters)
}

// Predict evaluates the network in inference mode on an arbitrary-size
// predictor matrix, forward-evaluating successive chunks of at most
// batchSize columns to bound peak memory. Chunking never changes the
// result: the output is numerically identical to a single whole-dataset
// forward pass. A batchSize of 0 or less defaults to 128.
func (n *Network) Predict(predictors *mat.Dense, batchSize int) (*mat.Dense, error) {
	if batchSize <= 0 {
		batchSize = 128
	}
	rows, cols := predictors.Dims()
	if err := n.checkNetwork("Predict", rows, true, false); err != nil {
		return nil, err
	}

	outSize := n.net.OutputSize()
	results := mat.NewDense(outSize, cols, nil)
	for i := 0; i < cols; i += batchSize {
		batch := batchSize
		if i+batch > cols {
			batch = cols - i
		}
		n.networkOutput = ensureDense(n.networkOutput, outSize, batch)
		n.net.Forward(predictors.Slice(0, rows, i, i+batch), n.networkOutput, 0, n.net.Len()-1)
		results.Slice(0, outSize, i, i+batch).(*mat.Dense).Copy(n.networkOutput)
	}
	return results, nil
}

// Clone returns a deep copy of the network: fresh layers with the same
// configuration and a copied parameter buffer. The clone's weight views
// and dimension state are rebuilt on its first use, so clone and original
// never alias each other's storage.
func (n *Network) Clone() (*Network, error) {
	fresh := layer.NewSequence()
	for _, l := range n.net.Layers() {
		spec, err := layer.Encode(l)
		if err != nil {
			return nil, err
		}
		cl, err := layer.Decode(spec)
		if err != nil {
			return nil, err
		}
		fresh.Add(cl)
	}
	return &Network{
		net:             fresh,
		outputLayer:     n.outputLayer,
		initializer:     n.initializer,
		parameters:      append([]float64(nil), n.parameters...),
		inputDimensions: append([]int(nil), n.inputDimensions...),
		training:        n.training,
		state:           Unconfigured,
	}, nil
}

// checkNetwork is the invariant gate every public entry point funnels
// through. Given the input size of the next operation it ensures, in
// order: the layer sequence is non-empty; dimensions are resolved; the
// parameter buffer exists and matches the aggregate weight count
// (reallocating and reinitializing when it does not, which can happen
// mid-lifetime after layers or dimensions changed); and every layer's
// weight view aliases its slice of the buffer. Repeated calls with
// unchanged inputs reduce to flag checks.
func (n *Network) checkNetwork(op string, inputSize int, setMode, training bool) error {
	if n.net.Len() == 0 {
		return &ConfigurationError{Op: op, Reason: "cannot use a network with no layers"}
	}

	if n.state < DimensionsResolved {
		if err := n.updateDimensions(op, inputSize); err != nil {
			return err
		}
	}

	weightSize := n.net.WeightSize()
	if len(n.parameters) != weightSize {
		n.parameters = make([]float64, weightSize)
		n.initializeWeights()
		if n.state > DimensionsResolved {
			// The buffer moved; the old views are stale.
			n.state = DimensionsResolved
		}
	}

	if n.state < WeightsBound {
		n.setLayerMemory()
	}

	if setMode {
		n.SetNetworkMode(training)
	}

	n.state = Ready
	return nil
}

// updateDimensions establishes the input shape the layer sequence sizes
// itself with. With no configured dimensions the input is treated as a
// single flat dimension of the given size. A non-zero inputSize that
// disagrees with the product of the configured dimensions is an error.
// When the configured dimensions already match the sequence's cached input
// dimensions, resolution short-circuits without re-deriving layer shapes.
func (n *Network) updateDimensions(op string, inputSize int) error {
	if len(n.inputDimensions) == 0 {
		n.inputDimensions = []int{inputSize}
	}

	total := flatSize(n.inputDimensions)
	if total != inputSize && inputSize != 0 {
		return &DimensionMismatchError{Op: op, Expected: total, Actual: inputSize}
	}

	if intsEqual(n.inputDimensions, n.net.InputDimensions()) {
		if n.state < DimensionsResolved {
			n.state = DimensionsResolved
		}
		return nil
	}

	n.net.SetInputDimensions(n.inputDimensions)
	n.net.ComputeOutputDimensions()
	n.dimensionUpdates++
	n.state = DimensionsResolved
	return nil
}

// initializeWeights switches the network to inference mode and fills the
// freshly sized parameter buffer with the initialization rule. It must run
// before setLayerMemory whenever the buffer was just (re)allocated.
func (n *Network) initializeWeights() {
	n.SetNetworkMode(false)
	weights.Initialize(n.initializer, n.net.WeightSizes(), n.parameters)
	n.weightInitializations++
}

// setLayerMemory rebinds every layer's weight view to its slice of the
// parameter buffer. A mismatch between the aggregate layer weight count
// and the buffer size signals an internal bookkeeping bug, not a caller
// error, and aborts loudly rather than risk silently wrong gradients.
func (n *Network) setLayerMemory() {
	if total := n.net.WeightSize(); total != len(n.parameters) {
		panic(fmt.Sprintf("ffn: total layer weight size %d does not match parameter buffer size %d",
			total, len(n.parameters)))
	}
	n.net.SetWeights(n.parameters)
	if n.state < WeightsBound {
		n.state = WeightsBound
	}
}

// warnMaxIterations warns when an optimizer exposing an iteration budget
// cannot complete a full pass over the dataset. Optimizers without the
// capability are left alone.
func warnMaxIterations(optimizer optim.Optimizer, samples int) {
	type maxIterer interface{ MaxIterations() int }
	m, ok := optimizer.(maxIterer)
	if !ok {
		return
	}
	if m.MaxIterations() != 0 && m.MaxIterations() < samples {
		log.Printf("ffn: the optimizer's iteration budget (%d) is smaller than the dataset (%d examples); "+
			"it will not pass over the entire dataset", m.MaxIterations(), samples)
	}
}

func flatSize(dims []int) int {
	p := 1
	for _, d := range dims {
		p *= d
	}
	return p
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ensureDense reuses m when its shape already matches, otherwise
// allocates.
func ensureDense(m *mat.Dense, rows, cols int) *mat.Dense {
	if m != nil {
		if r, c := m.Dims(); r == rows && c == cols {
			return m
		}
	}
	return mat.NewDense(rows, cols, nil)
}

// copyDense copies src into dst, resizing dst when its shape differs.
func copyDense(dst, src *mat.Dense) {
	sr, sc := src.Dims()
	if dst.IsEmpty() {
		dst.CloneFrom(src)
		return
	}
	if dr, dc := dst.Dims(); dr != sr || dc != sc {
		dst.CloneFrom(src)
		return
	}
	dst.Copy(src)
}
