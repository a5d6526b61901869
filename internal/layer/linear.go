package layer

import (
	"gonum.org/v1/gonum/mat"
)

// Linear implements a fully connected layer.
//
// Performs the transformation: y = W @ x + b
// where:
//   - x is the input batch with shape (in features, batch)
//   - W is the weight matrix with shape (out features, in features)
//   - b is the bias vector with shape (out features)
//   - y is the output batch with shape (out features, batch)
//
// The input size is not fixed at construction; it is inferred when input
// dimensions are propagated through the network, so the same layer value can
// follow any predecessor. W and b live in the network's flat parameter
// buffer: the layer holds a non-owning view bound by SetWeights, with W
// first and b directly after it.
type Linear struct {
	outSize  int
	inSize   int
	weights  []float64
	training bool
}

// NewLinear creates a fully connected layer producing outSize features per
// example.
func NewLinear(outSize int) *Linear {
	if outSize <= 0 {
		panic("layer: Linear output size must be positive")
	}
	return &Linear{outSize: outSize}
}

// ComputeOutputDimensions flattens the input shape and records the input
// size the weight matrix must match.
func (l *Linear) ComputeOutputDimensions(inputDims []int) []int {
	l.inSize = product(inputDims)
	return []int{l.outSize}
}

// WeightSize reports outSize*inSize weights plus outSize biases.
func (l *Linear) WeightSize() int {
	return l.outSize*l.inSize + l.outSize
}

// SetWeights binds the layer to its view of the parameter buffer.
func (l *Linear) SetWeights(weights []float64) {
	l.weights = weights
}

// Weights returns the layer's current weight view. It aliases the network's
// parameter buffer.
func (l *Linear) Weights() []float64 {
	return l.weights
}

// OutputSize returns the number of output features.
func (l *Linear) OutputSize() int {
	return l.outSize
}

func (l *Linear) weightMatrix() *mat.Dense {
	return mat.NewDense(l.outSize, l.inSize, l.weights[:l.outSize*l.inSize])
}

func (l *Linear) bias() []float64 {
	return l.weights[l.outSize*l.inSize:]
}

// Forward computes output = W @ input + b.
func (l *Linear) Forward(input mat.Matrix, output *mat.Dense) {
	output.Mul(l.weightMatrix(), input)

	b := l.bias()
	_, cols := output.Dims()
	for j := 0; j < cols; j++ {
		for i := 0; i < l.outSize; i++ {
			output.Set(i, j, output.At(i, j)+b[i])
		}
	}
}

// Backward propagates the output gradient to the input: inputGrad = Wᵀ @ outputGrad.
func (l *Linear) Backward(_, _, outputGrad mat.Matrix, inputGrad *mat.Dense) {
	inputGrad.Mul(l.weightMatrix().T(), outputGrad)
}

// Gradient computes dW = outputGrad @ inputᵀ and db = row sums of
// outputGrad, written into the layer's slice of the gradient buffer with the
// same layout as the weights.
func (l *Linear) Gradient(input, outputGrad mat.Matrix, gradient []float64) {
	dw := mat.NewDense(l.outSize, l.inSize, gradient[:l.outSize*l.inSize])
	dw.Mul(outputGrad, input.T())

	db := gradient[l.outSize*l.inSize:]
	_, cols := outputGrad.Dims()
	for i := 0; i < l.outSize; i++ {
		sum := 0.0
		for j := 0; j < cols; j++ {
			sum += outputGrad.At(i, j)
		}
		db[i] = sum
	}
}

// Loss returns 0; Linear contributes no auxiliary loss.
func (l *Linear) Loss() float64 { return 0 }

// SetTraining is a no-op switch; Linear behaves identically in both modes.
func (l *Linear) SetTraining(training bool) { l.training = training }

// LinearNoBias is a fully connected layer without a bias term: y = W @ x.
type LinearNoBias struct {
	outSize  int
	inSize   int
	weights  []float64
	training bool
}

// NewLinearNoBias creates a fully connected layer without bias.
func NewLinearNoBias(outSize int) *LinearNoBias {
	if outSize <= 0 {
		panic("layer: LinearNoBias output size must be positive")
	}
	return &LinearNoBias{outSize: outSize}
}

// ComputeOutputDimensions flattens the input shape and records the input
// size.
func (l *LinearNoBias) ComputeOutputDimensions(inputDims []int) []int {
	l.inSize = product(inputDims)
	return []int{l.outSize}
}

// WeightSize reports outSize*inSize weights.
func (l *LinearNoBias) WeightSize() int {
	return l.outSize * l.inSize
}

// SetWeights binds the layer to its view of the parameter buffer.
func (l *LinearNoBias) SetWeights(weights []float64) {
	l.weights = weights
}

// Weights returns the layer's current weight view.
func (l *LinearNoBias) Weights() []float64 {
	return l.weights
}

// OutputSize returns the number of output features.
func (l *LinearNoBias) OutputSize() int {
	return l.outSize
}

func (l *LinearNoBias) weightMatrix() *mat.Dense {
	return mat.NewDense(l.outSize, l.inSize, l.weights)
}

// Forward computes output = W @ input.
func (l *LinearNoBias) Forward(input mat.Matrix, output *mat.Dense) {
	output.Mul(l.weightMatrix(), input)
}

// Backward propagates the output gradient to the input.
func (l *LinearNoBias) Backward(_, _, outputGrad mat.Matrix, inputGrad *mat.Dense) {
	inputGrad.Mul(l.weightMatrix().T(), outputGrad)
}

// Gradient computes dW = outputGrad @ inputᵀ into the gradient view.
func (l *LinearNoBias) Gradient(input, outputGrad mat.Matrix, gradient []float64) {
	dw := mat.NewDense(l.outSize, l.inSize, gradient)
	dw.Mul(outputGrad, input.T())
}

// Loss returns 0; LinearNoBias contributes no auxiliary loss.
func (l *LinearNoBias) Loss() float64 { return 0 }

// SetTraining is a no-op switch.
func (l *LinearNoBias) SetTraining(training bool) { l.training = training }
