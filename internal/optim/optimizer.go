// Package optim implements gradient-based optimizers for training networks
// through the differentiable-objective contract.
//
// This package provides:
//   - Objective: the contract a trainable model exposes to optimizers
//   - SGD: mini-batch stochastic gradient descent with momentum
//   - Adam: Adaptive Moment Estimation
//   - Minimize: an adapter driving any gonum optimize.Method against an
//     Objective
//
// Optimizers never touch a network's layers directly; they see only the
// flat parameter buffer and the objective contract.
//
// Example usage:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{
//	    StepSize:      0.01,
//	    BatchSize:     32,
//	    MaxIterations: 10000,
//	})
//	finalObjective, err := network.Train(predictors, responses, optimizer)
package optim

// Objective is the differentiable-objective contract consumed by
// optimizers: a scalar function of a flat parameter vector, decomposable
// into per-example terms, with gradients matching the parameter layout.
//
// The parameters slice passed to every method is the model's own parameter
// buffer. The model's weight views alias it, so in-place mutation between
// calls is visible to the model without any explicit assignment.
//
// Batch variants operate on the contiguous example slice
// [begin, begin+batchSize) of the objective's stored dataset. Slices
// reaching past the stored example count are not bounds-checked here.
type Objective interface {
	// Evaluate computes the total objective over all stored examples.
	Evaluate(parameters []float64) float64

	// EvaluateBatch computes the objective over one example slice.
	EvaluateBatch(parameters []float64, begin, batchSize int) float64

	// EvaluateWithGradient computes the total objective and its gradient
	// over all stored examples. gradient must have the same length as
	// parameters.
	EvaluateWithGradient(parameters, gradient []float64) float64

	// EvaluateWithGradientBatch computes the objective and gradient over
	// one example slice.
	EvaluateWithGradientBatch(parameters []float64, begin int, gradient []float64, batchSize int) float64

	// Gradient computes only the gradient over one example slice. Some
	// optimizers never need the objective value.
	Gradient(parameters []float64, begin int, gradient []float64, batchSize int)

	// NumFunctions reports the number of stored examples.
	NumFunctions() int
}

// Shuffler is an optional Objective capability: reordering the stored
// examples between epochs. Optimizers that want shuffling probe for it
// with a type assertion.
type Shuffler interface {
	Shuffle()
}

// Optimizer iteratively minimizes an Objective by mutating the parameter
// buffer in place. It returns the final objective value.
type Optimizer interface {
	Optimize(objective Objective, parameters []float64) (float64, error)
}
