package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestSequence_DimensionPropagation tests shape inference through a stack
// of shape-changing and shape-preserving layers.
func TestSequence_DimensionPropagation(t *testing.T) {
	s := NewSequence(NewLinear(2), NewReLU(), NewLinear(1))
	s.SetInputDimensions([]int{1})
	s.ComputeOutputDimensions()

	assert.Equal(t, 1, s.OutputSize())
	assert.Equal(t, []int{4, 0, 3}, s.WeightSizes())
	assert.Equal(t, 7, s.WeightSize())
}

// TestSequence_SetWeightsDistributesViews tests that each layer's weight
// view is the correct aliasing slice of the flat buffer.
func TestSequence_SetWeightsDistributesViews(t *testing.T) {
	first := NewLinear(2)
	last := NewLinear(1)
	s := NewSequence(first, NewReLU(), last)
	s.SetInputDimensions([]int{1})
	s.ComputeOutputDimensions()

	params := make([]float64, s.WeightSize())
	s.SetWeights(params)

	require.Len(t, first.Weights(), 4)
	require.Len(t, last.Weights(), 3)

	params[0] = 1.5
	params[4] = -2.5
	assert.Equal(t, 1.5, first.Weights()[0])
	assert.Equal(t, -2.5, last.Weights()[0])
}

// TestSequence_SetWeightsSizeMismatch tests the buffer-size guard.
func TestSequence_SetWeightsSizeMismatch(t *testing.T) {
	s := NewSequence(NewLinear(2))
	s.SetInputDimensions([]int{1})
	s.ComputeOutputDimensions()

	assert.Panics(t, func() { s.SetWeights(make([]float64, 3)) })
}

// TestSequence_Forward tests a full forward pass against hand-computed
// values.
func TestSequence_Forward(t *testing.T) {
	s := NewSequence(NewLinear(2), NewReLU(), NewLinear(1))
	s.SetInputDimensions([]int{1})
	s.ComputeOutputDimensions()

	// Layer 1: W = [[1] [-1]], b = [0.5 0.5]
	// Layer 3: W = [[2 3]], b = [0.25]
	params := []float64{1, -1, 0.5, 0.5, 2, 3, 0.25}
	s.SetWeights(params)

	input := mat.NewDense(1, 1, []float64{1})
	output := mat.NewDense(1, 1, nil)
	s.Forward(input, output, 0, s.Len()-1)

	// x=1: hidden = (1.5, -0.5), relu = (1.5, 0), out = 2*1.5 + 0.25
	assert.InDelta(t, 3.25, output.At(0, 0), 1e-12)
}

// TestSequence_BackwardGradient tests delta and weight gradients through
// the stack against hand-computed values.
func TestSequence_BackwardGradient(t *testing.T) {
	s := NewSequence(NewLinear(2), NewReLU(), NewLinear(1))
	s.SetInputDimensions([]int{1})
	s.ComputeOutputDimensions()
	params := []float64{1, -1, 0.5, 0.5, 2, 3, 0.25}
	s.SetWeights(params)

	input := mat.NewDense(1, 1, []float64{1})
	output := mat.NewDense(1, 1, nil)
	s.Forward(input, output, 0, s.Len()-1)

	errorGrad := mat.NewDense(1, 1, []float64{1})
	delta := mat.NewDense(1, 1, nil)
	s.Backward(input, output, errorGrad, delta)

	// Last linear: inputGrad = Wᵀ @ 1 = (2, 3).
	// ReLU killed the second hidden unit, so its grad = (2, 0).
	// First linear: delta = Wᵀ @ (2, 0) = 1*2 + (-1)*0 = 2.
	assert.InDelta(t, 2, delta.At(0, 0), 1e-12)

	gradient := make([]float64, s.WeightSize())
	s.Gradient(input, errorGrad, gradient)

	// First linear: dW = (2, 0) @ xᵀ = (2, 0), db = (2, 0).
	// Last linear: dW = 1 @ (1.5, 0)ᵀ = (1.5, 0), db = 1.
	assert.InDeltaSlice(t, []float64{2, 0, 2, 0, 1.5, 0, 1}, gradient, 1e-12)
}

// TestSequence_ForwardRangeNoOp tests that an inverted range does nothing.
func TestSequence_ForwardRangeNoOp(t *testing.T) {
	s := NewSequence(NewLinear(1))
	output := mat.NewDense(1, 1, []float64{42})
	s.Forward(mat.NewDense(1, 1, []float64{1}), output, 1, 0)
	assert.Equal(t, 42.0, output.At(0, 0))
}

// TestSequence_TrainingModePropagates tests the mode switch reaches every
// layer.
func TestSequence_TrainingModePropagates(t *testing.T) {
	d := NewDropout(0.5)
	s := NewSequence(NewLinear(2), d)
	s.SetTraining(true)
	assert.True(t, s.Training())
	assert.True(t, d.training)
	s.SetTraining(false)
	assert.False(t, d.training)
}

// TestLayerSpec_RoundTrip tests that every layer type survives
// encode/decode with its configuration intact.
func TestLayerSpec_RoundTrip(t *testing.T) {
	layers := []Layer{NewLinear(5), NewLinearNoBias(3), NewReLU(), NewSigmoid(), NewTanh(), NewDropout(0.2), NewIdentity()}
	for _, l := range layers {
		spec, err := Encode(l)
		require.NoError(t, err)
		decoded, err := Decode(spec)
		require.NoError(t, err)
		assert.IsType(t, l, decoded)
	}

	spec, err := Encode(NewDropout(0.3))
	require.NoError(t, err)
	decoded, err := Decode(spec)
	require.NoError(t, err)
	assert.Equal(t, 0.3, decoded.(*Dropout).Ratio())

	_, err = Decode(Spec{Type: "convolution"})
	assert.Error(t, err)
}
