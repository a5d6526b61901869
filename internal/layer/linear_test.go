package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestLinear_Forward tests y = W @ x + b on a known weight layout.
func TestLinear_Forward(t *testing.T) {
	l := NewLinear(3)
	dims := l.ComputeOutputDimensions([]int{2})
	assert.Equal(t, []int{3}, dims)
	require.Equal(t, 9, l.WeightSize())

	// W = [[1 2] [3 4] [5 6]], b = [0.5 -0.5 1]
	l.SetWeights([]float64{1, 2, 3, 4, 5, 6, 0.5, -0.5, 1})

	input := mat.NewDense(2, 2, []float64{
		1, 0,
		2, -1,
	})
	output := mat.NewDense(3, 2, nil)
	l.Forward(input, output)

	expected := mat.NewDense(3, 2, []float64{
		5.5, -1.5,
		10.5, -4.5,
		18, -5,
	})
	assert.True(t, mat.EqualApprox(expected, output, 1e-12), "got %v", mat.Formatted(output))
}

// TestLinear_Backward tests inputGrad = Wᵀ @ outputGrad.
func TestLinear_Backward(t *testing.T) {
	l := NewLinear(3)
	l.ComputeOutputDimensions([]int{2})
	l.SetWeights([]float64{1, 2, 3, 4, 5, 6, 0, 0, 0})

	outputGrad := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	})
	inputGrad := mat.NewDense(2, 2, nil)
	l.Backward(nil, nil, outputGrad, inputGrad)

	expected := mat.NewDense(2, 2, []float64{
		6, 8,
		8, 10,
	})
	assert.True(t, mat.EqualApprox(expected, inputGrad, 1e-12))
}

// TestLinear_Gradient tests dW = outputGrad @ inputᵀ and db = row sums.
func TestLinear_Gradient(t *testing.T) {
	l := NewLinear(3)
	l.ComputeOutputDimensions([]int{2})

	input := mat.NewDense(2, 2, []float64{
		1, 0,
		2, -1,
	})
	outputGrad := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	})
	gradient := make([]float64, l.WeightSize())
	l.Gradient(input, outputGrad, gradient)

	assert.InDeltaSlice(t, []float64{1, 2, 0, -1, 1, 1, 1, 1, 2}, gradient, 1e-12)
}

// TestLinear_WeightsAliasBoundSlice tests that the weight view aliases the
// slice bound by SetWeights.
func TestLinear_WeightsAliasBoundSlice(t *testing.T) {
	l := NewLinear(1)
	l.ComputeOutputDimensions([]int{1})
	buf := []float64{3, 4}
	l.SetWeights(buf)

	buf[0] = 7
	assert.Equal(t, 7.0, l.Weights()[0])
}

// TestLinearNoBias_ForwardAndSize tests the bias-free variant.
func TestLinearNoBias_ForwardAndSize(t *testing.T) {
	l := NewLinearNoBias(2)
	l.ComputeOutputDimensions([]int{3})
	require.Equal(t, 6, l.WeightSize())

	l.SetWeights([]float64{1, 0, -1, 0, 2, 0})
	input := mat.NewDense(3, 1, []float64{1, 2, 3})
	output := mat.NewDense(2, 1, nil)
	l.Forward(input, output)

	assert.InDelta(t, -2, output.At(0, 0), 1e-12)
	assert.InDelta(t, 4, output.At(1, 0), 1e-12)
}

// TestNewLinear_InvalidSize tests the constructor's size guard.
func TestNewLinear_InvalidSize(t *testing.T) {
	assert.Panics(t, func() { NewLinear(0) })
	assert.Panics(t, func() { NewLinearNoBias(-1) })
}
