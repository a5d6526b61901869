package layer

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ReLU applies max(0, x) element-wise. It has no trainable weights and
// preserves the input shape.
type ReLU struct {
	weightless
	dims []int
}

// NewReLU creates a ReLU activation layer.
func NewReLU() *ReLU { return &ReLU{} }

// ComputeOutputDimensions preserves the input shape.
func (r *ReLU) ComputeOutputDimensions(inputDims []int) []int {
	r.dims = append(r.dims[:0], inputDims...)
	return r.dims
}

// Forward computes output = max(0, input).
func (r *ReLU) Forward(input mat.Matrix, output *mat.Dense) {
	rows, cols := input.Dims()
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			v := input.At(i, j)
			if v < 0 {
				v = 0
			}
			output.Set(i, j, v)
		}
	}
}

// Backward zeroes the gradient wherever the input was non-positive.
func (r *ReLU) Backward(input, _, outputGrad mat.Matrix, inputGrad *mat.Dense) {
	rows, cols := input.Dims()
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			if input.At(i, j) > 0 {
				inputGrad.Set(i, j, outputGrad.At(i, j))
			} else {
				inputGrad.Set(i, j, 0)
			}
		}
	}
}

// Sigmoid applies 1/(1+exp(-x)) element-wise.
type Sigmoid struct {
	weightless
	dims []int
}

// NewSigmoid creates a Sigmoid activation layer.
func NewSigmoid() *Sigmoid { return &Sigmoid{} }

// ComputeOutputDimensions preserves the input shape.
func (s *Sigmoid) ComputeOutputDimensions(inputDims []int) []int {
	s.dims = append(s.dims[:0], inputDims...)
	return s.dims
}

// Forward computes output = 1 / (1 + exp(-input)).
func (s *Sigmoid) Forward(input mat.Matrix, output *mat.Dense) {
	rows, cols := input.Dims()
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			output.Set(i, j, 1/(1+math.Exp(-input.At(i, j))))
		}
	}
}

// Backward uses the cached output: d/dx sigmoid = y * (1 - y).
func (s *Sigmoid) Backward(_, output, outputGrad mat.Matrix, inputGrad *mat.Dense) {
	rows, cols := outputGrad.Dims()
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			y := output.At(i, j)
			inputGrad.Set(i, j, outputGrad.At(i, j)*y*(1-y))
		}
	}
}

// Tanh applies the hyperbolic tangent element-wise.
type Tanh struct {
	weightless
	dims []int
}

// NewTanh creates a Tanh activation layer.
func NewTanh() *Tanh { return &Tanh{} }

// ComputeOutputDimensions preserves the input shape.
func (t *Tanh) ComputeOutputDimensions(inputDims []int) []int {
	t.dims = append(t.dims[:0], inputDims...)
	return t.dims
}

// Forward computes output = tanh(input).
func (t *Tanh) Forward(input mat.Matrix, output *mat.Dense) {
	rows, cols := input.Dims()
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			output.Set(i, j, math.Tanh(input.At(i, j)))
		}
	}
}

// Backward uses the cached output: d/dx tanh = 1 - y².
func (t *Tanh) Backward(_, output, outputGrad mat.Matrix, inputGrad *mat.Dense) {
	rows, cols := outputGrad.Dims()
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			y := output.At(i, j)
			inputGrad.Set(i, j, outputGrad.At(i, j)*(1-y*y))
		}
	}
}
