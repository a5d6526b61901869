package layer

import "gonum.org/v1/gonum/mat"

// Layer is the capability contract every layer in a network satisfies.
//
// A layer transforms a fixed-shape input batch into a fixed-shape output
// batch and contributes zero or more trainable weights. Batches are
// column-major: each column of a matrix is one example, each row one
// feature.
//
// Call order matters: ComputeOutputDimensions must run before WeightSize
// (layers whose parameter count depends on the input shape, such as Linear,
// size themselves during dimension propagation), and SetWeights must run
// before Forward for layers that carry weights. The Sequence container
// enforces this ordering; layers do not re-validate it.
type Layer interface {
	// ComputeOutputDimensions derives the output shape from the given input
	// shape. The layer caches both shapes for later weight sizing.
	ComputeOutputDimensions(inputDims []int) []int

	// WeightSize reports the number of trainable weights. Only valid after
	// ComputeOutputDimensions has run.
	WeightSize() int

	// SetWeights binds the layer to a view of the network's flat parameter
	// buffer. The slice aliases the buffer; the layer must not copy it, so
	// that in-place mutation of the buffer is visible to the layer.
	SetWeights(weights []float64)

	// Forward computes the layer output for an input batch. output is
	// pre-sized to (output size, batch).
	Forward(input mat.Matrix, output *mat.Dense)

	// Backward computes the gradient with respect to the layer input, given
	// the input and output of the earlier Forward call and the gradient with
	// respect to the output. inputGrad is pre-sized to match input.
	Backward(input, output, outputGrad mat.Matrix, inputGrad *mat.Dense)

	// Gradient computes the gradient with respect to the layer weights into
	// gradient, which is the layer's view of a buffer laid out exactly like
	// the parameter buffer. Layers without weights do nothing.
	Gradient(input, outputGrad mat.Matrix, gradient []float64)

	// Loss reports any auxiliary loss contribution of the layer (for example
	// a regularization penalty). Most layers return 0.
	Loss() float64

	// SetTraining switches the layer between training and inference
	// behavior.
	SetTraining(training bool)
}

// weightless provides the no-op weight plumbing shared by layers without
// trainable parameters.
type weightless struct {
	training bool
}

func (w *weightless) WeightSize() int { return 0 }

func (w *weightless) SetWeights([]float64) {}

func (w *weightless) Gradient(_, _ mat.Matrix, _ []float64) {}

func (w *weightless) Loss() float64 { return 0 }

func (w *weightless) SetTraining(training bool) { w.training = training }

func product(dims []int) int {
	p := 1
	for _, d := range dims {
		p *= d
	}
	return p
}
