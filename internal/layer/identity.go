package layer

import "gonum.org/v1/gonum/mat"

// Identity passes its input through unchanged in both directions. Useful
// as a placeholder or for skip-connection plumbing.
type Identity struct {
	weightless
	dims []int
}

// NewIdentity creates an Identity layer.
func NewIdentity() *Identity { return &Identity{} }

// ComputeOutputDimensions preserves the input shape.
func (id *Identity) ComputeOutputDimensions(inputDims []int) []int {
	id.dims = append(id.dims[:0], inputDims...)
	return id.dims
}

// Forward copies the input through.
func (id *Identity) Forward(input mat.Matrix, output *mat.Dense) {
	rows, cols := input.Dims()
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			output.Set(i, j, input.At(i, j))
		}
	}
}

// Backward copies the gradient through.
func (id *Identity) Backward(_, _, outputGrad mat.Matrix, inputGrad *mat.Dense) {
	rows, cols := outputGrad.Dims()
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			inputGrad.Set(i, j, outputGrad.At(i, j))
		}
	}
}
