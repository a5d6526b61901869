package optim

import "gonum.org/v1/gonum/floats"

// SGD implements mini-batch stochastic gradient descent with optional
// momentum.
//
// Update rule without momentum:
//
//	parameters -= stepSize * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity - stepSize * gradient
//	parameters += velocity
//
// Each iteration visits one contiguous mini-batch of the objective's
// stored examples, cycling from the start once the dataset is exhausted.
// If the objective supports Shuffle, the examples are reshuffled at the
// start of every pass.
//
// Example:
//
//	sgd := optim.NewSGD(optim.SGDConfig{
//	    StepSize:      0.01,
//	    Momentum:      0.9,
//	    BatchSize:     32,
//	    MaxIterations: 10000,
//	})
type SGD struct {
	stepSize      float64
	momentum      float64
	batchSize     int
	maxIterations int
	shuffle       bool
}

// SGDConfig holds configuration for SGD.
type SGDConfig struct {
	StepSize      float64 // Step size (default: 0.01)
	Momentum      float64 // Momentum factor in [0, 1) (default: 0)
	BatchSize     int     // Examples per iteration (default: 32)
	MaxIterations int     // Total iterations; 0 evaluates without updating (default: 10000 when negative)
	Shuffle       bool    // Reshuffle examples every pass, when supported
}

// NewSGD creates an SGD optimizer, applying defaults for unset fields.
// MaxIterations of exactly 0 is honored: the optimizer performs no updates
// and just reports the objective at the current parameters.
func NewSGD(config SGDConfig) *SGD {
	if config.StepSize <= 0 {
		config.StepSize = 0.01
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 32
	}
	if config.MaxIterations < 0 {
		config.MaxIterations = 10000
	}
	return &SGD{
		stepSize:      config.StepSize,
		momentum:      config.Momentum,
		batchSize:     config.BatchSize,
		maxIterations: config.MaxIterations,
		shuffle:       config.Shuffle,
	}
}

// MaxIterations reports the iteration budget. Callers can compare it to
// their dataset size to detect a partial pass.
func (s *SGD) MaxIterations() int { return s.maxIterations }

// StepSize reports the configured step size.
func (s *SGD) StepSize() float64 { return s.stepSize }

// Optimize runs the descent loop and returns the final total objective.
func (s *SGD) Optimize(objective Objective, parameters []float64) (float64, error) {
	n := objective.NumFunctions()
	gradient := make([]float64, len(parameters))
	var velocity []float64
	if s.momentum != 0 {
		velocity = make([]float64, len(parameters))
	}

	begin := 0
	for it := 0; it < s.maxIterations; it++ {
		if begin == 0 && s.shuffle {
			if sh, ok := objective.(Shuffler); ok {
				sh.Shuffle()
			}
		}

		batch := s.batchSize
		if begin+batch > n {
			batch = n - begin
		}
		objective.EvaluateWithGradientBatch(parameters, begin, gradient, batch)

		if s.momentum == 0 {
			floats.AddScaled(parameters, -s.stepSize, gradient)
		} else {
			floats.Scale(s.momentum, velocity)
			floats.AddScaled(velocity, -s.stepSize, gradient)
			floats.Add(parameters, velocity)
		}

		begin += batch
		if begin >= n {
			begin = 0
		}
	}

	return objective.Evaluate(parameters), nil
}
