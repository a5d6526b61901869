package ffn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/flint-ml/flint/internal/layer"
	"github.com/flint-ml/flint/internal/weights"
)

func regressionFixture(t *testing.T) (*Network, *mat.Dense, *mat.Dense) {
	t.Helper()
	n := New(nil, weights.NewConst(0.1))
	n.Add(layer.NewLinear(2))
	n.Add(layer.NewLinear(1))

	predictors := mat.NewDense(3, 4, []float64{
		1, 0, -1, 2,
		0, 1, 1, -1,
		2, 2, 0, 0,
	})
	responses := mat.NewDense(1, 4, []float64{1, 0, -1, 0.5})
	return n, predictors, responses
}

// TestNewDatasetObjective_ValidatesNetwork tests that construction fails
// on a network that cannot run.
func TestNewDatasetObjective_ValidatesNetwork(t *testing.T) {
	empty := New(nil, nil)
	_, err := NewDatasetObjective(empty, mat.NewDense(2, 1, nil), mat.NewDense(1, 1, nil))
	var confErr *ConfigurationError
	assert.ErrorAs(t, err, &confErr)
}

// TestDatasetObjective_NumFunctions tests the example count.
func TestDatasetObjective_NumFunctions(t *testing.T) {
	n, predictors, responses := regressionFixture(t)
	o, err := NewDatasetObjective(n, predictors, responses)
	require.NoError(t, err)
	assert.Equal(t, 4, o.NumFunctions())
}

// TestDatasetObjective_EvaluateMatchesBatchSum tests that the full
// evaluation equals the sum of single-example batches.
func TestDatasetObjective_EvaluateMatchesBatchSum(t *testing.T) {
	n, predictors, responses := regressionFixture(t)
	o, err := NewDatasetObjective(n, predictors, responses)
	require.NoError(t, err)

	total := o.Evaluate(n.Parameters())
	sum := 0.0
	for i := 0; i < o.NumFunctions(); i++ {
		sum += o.EvaluateBatch(n.Parameters(), i, 1)
	}
	assert.InDelta(t, sum, total, 1e-12)
	assert.Greater(t, total, 0.0)
}

// TestDatasetObjective_GradientMatchesBackward tests that the batch
// gradient path agrees with an explicit forward/backward pass.
func TestDatasetObjective_GradientMatchesBackward(t *testing.T) {
	n, predictors, responses := regressionFixture(t)
	o, err := NewDatasetObjective(n, predictors, responses)
	require.NoError(t, err)

	size, err := n.WeightSize()
	require.NoError(t, err)

	fromObjective := make([]float64, size)
	objective := o.EvaluateWithGradientBatch(n.Parameters(), 0, fromObjective, 4)

	fromBackward := make([]float64, size)
	require.NoError(t, n.Forward(predictors, &mat.Dense{}))
	direct, err := n.Backward(predictors, responses, fromBackward)
	require.NoError(t, err)

	assert.InDelta(t, direct, objective, 1e-12)
	assert.InDeltaSlice(t, fromBackward, fromObjective, 1e-12)
}

// TestDatasetObjective_EvaluateWithGradientAccumulates tests that the
// whole-dataset gradient equals the sum of single-example gradients.
func TestDatasetObjective_EvaluateWithGradientAccumulates(t *testing.T) {
	n, predictors, responses := regressionFixture(t)
	o, err := NewDatasetObjective(n, predictors, responses)
	require.NoError(t, err)

	size, _ := n.WeightSize()
	gradient := make([]float64, size)
	total := o.EvaluateWithGradient(n.Parameters(), gradient)

	expected := make([]float64, size)
	tmp := make([]float64, size)
	sum := 0.0
	for i := 0; i < o.NumFunctions(); i++ {
		sum += o.EvaluateWithGradientBatch(n.Parameters(), i, tmp, 1)
		for d := range expected {
			expected[d] += tmp[d]
		}
	}

	assert.InDelta(t, sum, total, 1e-12)
	assert.InDeltaSlice(t, expected, gradient, 1e-12)
}

// TestDatasetObjective_Shuffle tests that predictor and response columns
// are permuted in lockstep.
func TestDatasetObjective_Shuffle(t *testing.T) {
	n := New(nil, weights.NewConst(0.1))
	n.Add(layer.NewLinear(1))

	const samples = 16
	predictors := mat.NewDense(1, samples, nil)
	responses := mat.NewDense(1, samples, nil)
	for j := 0; j < samples; j++ {
		predictors.Set(0, j, float64(j))
		responses.Set(0, j, float64(j)*10)
	}

	o, err := NewDatasetObjective(n, predictors, responses)
	require.NoError(t, err)
	o.Shuffle()

	seen := make(map[float64]bool)
	for j := 0; j < samples; j++ {
		p := o.predictors.At(0, j)
		assert.Equal(t, p*10, o.responses.At(0, j), "pairing broken at column %d", j)
		seen[p] = true
	}
	assert.Len(t, seen, samples, "shuffle must be a permutation")
}
