package layer

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Dropout randomly zeroes input elements with probability ratio during
// training and rescales the survivors by 1/(1-ratio), so the expected
// activation magnitude matches inference. In inference mode it passes the
// input through unchanged.
type Dropout struct {
	weightless
	ratio float64
	scale float64
	dims  []int
	mask  *mat.Dense
}

// NewDropout creates a Dropout layer. ratio must be in [0, 1).
func NewDropout(ratio float64) *Dropout {
	if ratio < 0 || ratio >= 1 {
		panic("layer: Dropout ratio must be in [0, 1)")
	}
	return &Dropout{ratio: ratio, scale: 1 / (1 - ratio)}
}

// Ratio returns the configured drop probability.
func (d *Dropout) Ratio() float64 { return d.ratio }

// ComputeOutputDimensions preserves the input shape.
func (d *Dropout) ComputeOutputDimensions(inputDims []int) []int {
	d.dims = append(d.dims[:0], inputDims...)
	return d.dims
}

// Forward samples a fresh mask in training mode and applies it; in
// inference mode it copies the input through.
func (d *Dropout) Forward(input mat.Matrix, output *mat.Dense) {
	rows, cols := input.Dims()
	if !d.training {
		for j := 0; j < cols; j++ {
			for i := 0; i < rows; i++ {
				output.Set(i, j, input.At(i, j))
			}
		}
		return
	}

	if d.mask == nil {
		d.mask = mat.NewDense(rows, cols, nil)
	} else if mr, mc := d.mask.Dims(); mr != rows || mc != cols {
		d.mask = mat.NewDense(rows, cols, nil)
	}
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			keep := 0.0
			if rand.Float64() >= d.ratio {
				keep = d.scale
			}
			d.mask.Set(i, j, keep)
			output.Set(i, j, input.At(i, j)*keep)
		}
	}
}

// Backward reuses the mask sampled by the matching Forward call.
func (d *Dropout) Backward(_, _, outputGrad mat.Matrix, inputGrad *mat.Dense) {
	rows, cols := outputGrad.Dims()
	if !d.training || d.mask == nil {
		for j := 0; j < cols; j++ {
			for i := 0; i < rows; i++ {
				inputGrad.Set(i, j, outputGrad.At(i, j))
			}
		}
		return
	}
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			inputGrad.Set(i, j, outputGrad.At(i, j)*d.mask.At(i, j))
		}
	}
}
