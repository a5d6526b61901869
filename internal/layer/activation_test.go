package layer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

// TestReLU_Forward tests max(0, x) and shape preservation.
func TestReLU_Forward(t *testing.T) {
	r := NewReLU()
	assert.Equal(t, []int{2, 3}, r.ComputeOutputDimensions([]int{2, 3}))
	assert.Equal(t, 0, r.WeightSize())

	input := mat.NewDense(2, 2, []float64{
		-1, 2,
		0, -3,
	})
	output := mat.NewDense(2, 2, nil)
	r.Forward(input, output)

	expected := mat.NewDense(2, 2, []float64{
		0, 2,
		0, 0,
	})
	assert.True(t, mat.Equal(expected, output))
}

// TestReLU_Backward tests that the gradient is zeroed where the input was
// non-positive.
func TestReLU_Backward(t *testing.T) {
	r := NewReLU()
	input := mat.NewDense(2, 2, []float64{
		-1, 2,
		0, -3,
	})
	outputGrad := mat.NewDense(2, 2, []float64{
		10, 20,
		30, 40,
	})
	inputGrad := mat.NewDense(2, 2, nil)
	r.Backward(input, nil, outputGrad, inputGrad)

	expected := mat.NewDense(2, 2, []float64{
		0, 20,
		0, 0,
	})
	assert.True(t, mat.Equal(expected, inputGrad))
}

// TestSigmoid_ForwardBackward tests the logistic value and its derivative
// computed from the cached output.
func TestSigmoid_ForwardBackward(t *testing.T) {
	s := NewSigmoid()
	input := mat.NewDense(1, 3, []float64{0, 2, -2})
	output := mat.NewDense(1, 3, nil)
	s.Forward(input, output)

	assert.InDelta(t, 0.5, output.At(0, 0), 1e-12)
	assert.InDelta(t, 1/(1+math.Exp(-2)), output.At(0, 1), 1e-12)
	assert.InDelta(t, 1/(1+math.Exp(2)), output.At(0, 2), 1e-12)

	outputGrad := mat.NewDense(1, 3, []float64{1, 1, 1})
	inputGrad := mat.NewDense(1, 3, nil)
	s.Backward(nil, output, outputGrad, inputGrad)
	for j := 0; j < 3; j++ {
		y := output.At(0, j)
		assert.InDelta(t, y*(1-y), inputGrad.At(0, j), 1e-12)
	}
}

// TestTanh_ForwardBackward tests tanh and its derivative from the cached
// output.
func TestTanh_ForwardBackward(t *testing.T) {
	th := NewTanh()
	input := mat.NewDense(1, 2, []float64{0.5, -1})
	output := mat.NewDense(1, 2, nil)
	th.Forward(input, output)

	assert.InDelta(t, math.Tanh(0.5), output.At(0, 0), 1e-12)
	assert.InDelta(t, math.Tanh(-1), output.At(0, 1), 1e-12)

	outputGrad := mat.NewDense(1, 2, []float64{2, 2})
	inputGrad := mat.NewDense(1, 2, nil)
	th.Backward(nil, output, outputGrad, inputGrad)
	for j := 0; j < 2; j++ {
		y := output.At(0, j)
		assert.InDelta(t, 2*(1-y*y), inputGrad.At(0, j), 1e-12)
	}
}
