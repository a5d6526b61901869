package optim

import "gonum.org/v1/gonum/optimize"

// Minimize drives a gonum optimize.Method against an Objective over its
// whole stored dataset.
//
// gonum methods propose candidate parameter vectors in freshly allocated
// slices rather than mutating in place, so each proposal is copied into
// the model's own parameter buffer before evaluation. The model's weight
// views alias that buffer and must observe the candidate values. The
// winning parameters are copied back into the buffer before returning.
//
// A nil settings uses gonum's defaults; a nil method selects one
// automatically.
func Minimize(objective Objective, parameters []float64, method optimize.Method, settings *optimize.Settings) (float64, error) {
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			copy(parameters, x)
			return objective.Evaluate(parameters)
		},
		Grad: func(grad, x []float64) {
			copy(parameters, x)
			objective.EvaluateWithGradient(parameters, grad)
		},
	}

	initial := make([]float64, len(parameters))
	copy(initial, parameters)

	result, err := optimize.Minimize(problem, initial, settings, method)
	if err != nil {
		return 0, err
	}
	copy(parameters, result.X)
	return result.F, nil
}

// GonumOptimizer adapts a gonum optimize.Method to the Optimizer
// interface, so networks can be trained with gonum's gradient-based
// methods (gradient descent, BFGS, L-BFGS, CG) through the same entry
// point as the built-in optimizers.
//
// Example:
//
//	opt := &optim.GonumOptimizer{Method: &optimize.LBFGS{}}
//	finalObjective, err := network.Train(predictors, responses, opt)
type GonumOptimizer struct {
	Method   optimize.Method
	Settings *optimize.Settings
}

// Optimize satisfies the Optimizer interface.
func (g *GonumOptimizer) Optimize(objective Objective, parameters []float64) (float64, error) {
	return Minimize(objective, parameters, g.Method, g.Settings)
}
