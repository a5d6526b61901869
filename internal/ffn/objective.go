package ffn

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DatasetObjective adapts a network plus a stored training set to the
// differentiable-objective contract generic optimizers consume
// (optim.Objective). Train builds one internally; constructing one
// directly is useful for probing the objective without running an
// optimizer, or for driving an optimizer by hand.
//
// The parameters argument of every method is expected to be the network's
// own parameter buffer. Because every layer's weight view aliases that
// buffer, an optimizer mutating it in place needs no further handshake:
// the adapter re-derives nothing from the argument and simply evaluates
// the network as currently parameterized.
//
// Batch variants slice the contiguous example columns
// [begin, begin+batchSize) of the stored dataset. Bounds are deliberately
// not validated here; a slice reaching past the stored column count
// panics.
type DatasetObjective struct {
	network    *Network
	predictors *mat.Dense
	responses  *mat.Dense
}

// NewDatasetObjective validates the network against the dataset and
// returns the adapter. The network configuration must not change for the
// adapter's lifetime.
func NewDatasetObjective(network *Network, predictors, responses *mat.Dense) (*DatasetObjective, error) {
	rows, _ := predictors.Dims()
	if err := network.checkNetwork("DatasetObjective", rows, false, false); err != nil {
		return nil, err
	}
	return &DatasetObjective{
		network:    network,
		predictors: predictors,
		responses:  responses,
	}, nil
}

// NumFunctions reports the number of stored examples.
func (o *DatasetObjective) NumFunctions() int {
	_, cols := o.predictors.Dims()
	return cols
}

// Evaluate sums the per-example objective over the whole stored dataset,
// one example at a time.
func (o *DatasetObjective) Evaluate(parameters []float64) float64 {
	total := 0.0
	for i := 0; i < o.NumFunctions(); i++ {
		total += o.EvaluateBatch(parameters, i, 1)
	}
	return total
}

// EvaluateBatch computes the objective over the example slice
// [begin, begin+batchSize).
func (o *DatasetObjective) EvaluateBatch(_ []float64, begin, batchSize int) float64 {
	n := o.network
	o.gate()

	n.networkOutput = ensureDense(n.networkOutput, n.net.OutputSize(), batchSize)
	n.net.Forward(o.predictorCols(begin, batchSize), n.networkOutput, 0, n.net.Len()-1)
	return n.outputLayer.Forward(n.networkOutput, o.responseCols(begin, batchSize)) + n.net.Loss()
}

// EvaluateWithGradient accumulates the per-example objective and gradient
// over the whole stored dataset. This is an O(n) loop over single-example
// batches with one temporary gradient buffer, deliberately not batched.
func (o *DatasetObjective) EvaluateWithGradient(parameters, gradient []float64) float64 {
	total := o.EvaluateWithGradientBatch(parameters, 0, gradient, 1)
	tmp := make([]float64, len(gradient))
	for i := 1; i < o.NumFunctions(); i++ {
		total += o.EvaluateWithGradientBatch(parameters, i, tmp, 1)
		floats.Add(gradient, tmp)
	}
	return total
}

// EvaluateWithGradientBatch runs forward, loss, backward and parameter-
// gradient computation over the example slice [begin, begin+batchSize).
// gradient must have exactly as many elements as the parameter buffer.
func (o *DatasetObjective) EvaluateWithGradientBatch(_ []float64, begin int, gradient []float64, batchSize int) float64 {
	n := o.network
	o.gate()

	predictors := o.predictorCols(begin, batchSize)
	responses := o.responseCols(begin, batchSize)

	n.networkOutput = ensureDense(n.networkOutput, n.net.OutputSize(), batchSize)
	n.net.Forward(predictors, n.networkOutput, 0, n.net.Len()-1)

	objective := n.outputLayer.Forward(n.networkOutput, responses) + n.net.Loss()

	outRows, _ := n.networkOutput.Dims()
	n.errorGrad = ensureDense(n.errorGrad, outRows, batchSize)
	n.outputLayer.Backward(n.networkOutput, responses, n.errorGrad)

	inRows, _ := o.predictors.Dims()
	n.networkDelta = ensureDense(n.networkDelta, inRows, batchSize)
	n.net.Backward(predictors, n.networkOutput, n.errorGrad, n.networkDelta)

	n.net.Gradient(predictors, n.errorGrad, gradient)
	return objective
}

// Gradient computes only the parameter gradient over the example slice;
// some optimizer contracts never consume the objective value.
func (o *DatasetObjective) Gradient(parameters []float64, begin int, gradient []float64, batchSize int) {
	o.EvaluateWithGradientBatch(parameters, begin, gradient, batchSize)
}

// Shuffle permutes the stored predictor and response columns in lockstep.
// Optimizers probe for this capability to reorder examples between
// epochs.
func (o *DatasetObjective) Shuffle() {
	pRows, cols := o.predictors.Dims()
	rRows, _ := o.responses.Dims()

	perm := rand.Perm(cols)
	predictors := mat.NewDense(pRows, cols, nil)
	responses := mat.NewDense(rRows, cols, nil)
	for to, from := range perm {
		for i := 0; i < pRows; i++ {
			predictors.Set(i, to, o.predictors.At(i, from))
		}
		for i := 0; i < rRows; i++ {
			responses.Set(i, to, o.responses.At(i, from))
		}
	}
	o.predictors = predictors
	o.responses = responses
}

// gate re-validates the network cheaply before a numeric operation. The
// constructor already proved the configuration sound, so a failure here
// means the network was mutated mid-optimization, and aborts loudly.
func (o *DatasetObjective) gate() {
	rows, _ := o.predictors.Dims()
	if err := o.network.checkNetwork("DatasetObjective", rows, false, false); err != nil {
		panic(err)
	}
}

func (o *DatasetObjective) predictorCols(begin, batchSize int) mat.Matrix {
	rows, _ := o.predictors.Dims()
	return o.predictors.Slice(0, rows, begin, begin+batchSize)
}

func (o *DatasetObjective) responseCols(begin, batchSize int) mat.Matrix {
	rows, _ := o.responses.Dims()
	return o.responses.Slice(0, rows, begin, begin+batchSize)
}
