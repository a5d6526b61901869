package optim

import "math"

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Adam keeps exponential moving averages of the gradient (first moment)
// and the squared gradient (second moment), with bias correction for the
// zero initialization:
//
//	m = beta1*m + (1-beta1)*g
//	v = beta2*v + (1-beta2)*g²
//	mHat = m / (1 - beta1^t)
//	vHat = v / (1 - beta2^t)
//	parameters -= stepSize * mHat / (sqrt(vHat) + eps)
//
// Reference: "Adam: A Method for Stochastic Optimization"
// (Kingma & Ba, 2014).
//
// Example:
//
//	adam := optim.NewAdam(optim.AdamConfig{
//	    StepSize:      0.001,
//	    BatchSize:     32,
//	    MaxIterations: 10000,
//	})
type Adam struct {
	stepSize      float64
	beta1         float64
	beta2         float64
	eps           float64
	batchSize     int
	maxIterations int
	shuffle       bool
}

// AdamConfig holds configuration for Adam.
type AdamConfig struct {
	StepSize      float64 // Step size (default: 0.001)
	Beta1         float64 // First-moment decay (default: 0.9)
	Beta2         float64 // Second-moment decay (default: 0.999)
	Eps           float64 // Numerical-stability term (default: 1e-8)
	BatchSize     int     // Examples per iteration (default: 32)
	MaxIterations int     // Total iterations; 0 evaluates without updating (default: 10000 when negative)
	Shuffle       bool    // Reshuffle examples every pass, when supported
}

// NewAdam creates an Adam optimizer, applying defaults for unset fields.
func NewAdam(config AdamConfig) *Adam {
	if config.StepSize <= 0 {
		config.StepSize = 0.001
	}
	if config.Beta1 == 0 {
		config.Beta1 = 0.9
	}
	if config.Beta2 == 0 {
		config.Beta2 = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 32
	}
	if config.MaxIterations < 0 {
		config.MaxIterations = 10000
	}
	return &Adam{
		stepSize:      config.StepSize,
		beta1:         config.Beta1,
		beta2:         config.Beta2,
		eps:           config.Eps,
		batchSize:     config.BatchSize,
		maxIterations: config.MaxIterations,
		shuffle:       config.Shuffle,
	}
}

// MaxIterations reports the iteration budget.
func (a *Adam) MaxIterations() int { return a.maxIterations }

// Optimize runs the descent loop and returns the final total objective.
func (a *Adam) Optimize(objective Objective, parameters []float64) (float64, error) {
	n := objective.NumFunctions()
	gradient := make([]float64, len(parameters))
	m := make([]float64, len(parameters))
	v := make([]float64, len(parameters))

	begin := 0
	t := 0
	for it := 0; it < a.maxIterations; it++ {
		if begin == 0 && a.shuffle {
			if sh, ok := objective.(Shuffler); ok {
				sh.Shuffle()
			}
		}

		batch := a.batchSize
		if begin+batch > n {
			batch = n - begin
		}
		objective.EvaluateWithGradientBatch(parameters, begin, gradient, batch)

		t++
		mCorr := 1 - math.Pow(a.beta1, float64(t))
		vCorr := 1 - math.Pow(a.beta2, float64(t))
		for i, g := range gradient {
			m[i] = a.beta1*m[i] + (1-a.beta1)*g
			v[i] = a.beta2*v[i] + (1-a.beta2)*g*g
			mHat := m[i] / mCorr
			vHat := v[i] / vCorr
			parameters[i] -= a.stepSize * mHat / (math.Sqrt(vHat) + a.eps)
		}

		begin += batch
		if begin >= n {
			begin = 0
		}
	}

	return objective.Evaluate(parameters), nil
}
