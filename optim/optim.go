// Copyright 2026 Flint ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"gonum.org/v1/gonum/optimize"

	"github.com/flint-ml/flint/internal/optim"
)

// Objective is the differentiable-objective contract a trainable model
// exposes to optimizers.
type Objective = optim.Objective

// Shuffler is an optional Objective capability: reordering the stored
// examples between epochs.
type Shuffler = optim.Shuffler

// Optimizer iteratively minimizes an Objective by mutating the parameter
// buffer in place.
type Optimizer = optim.Optimizer

// SGD (Stochastic Gradient Descent)

// SGD is mini-batch stochastic gradient descent with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for the SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates an SGD optimizer, applying defaults for unset fields.
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{
//	    StepSize:      0.01,
//	    Momentum:      0.9,
//	    BatchSize:     32,
//	    MaxIterations: 10000,
//	})
//	final, err := network.Train(predictors, responses, optimizer)
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}

// Adam (Adaptive Moment Estimation)

// Adam is the Adam optimizer with bias-corrected moment estimates.
type Adam = optim.Adam

// AdamConfig contains configuration for the Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates an Adam optimizer, applying defaults for unset fields.
//
// Example:
//
//	optimizer := optim.NewAdam(optim.AdamConfig{
//	    StepSize:      0.001,
//	    BatchSize:     32,
//	    MaxIterations: 10000,
//	})
//	final, err := network.Train(predictors, responses, optimizer)
func NewAdam(config AdamConfig) *Adam {
	return optim.NewAdam(config)
}

// Gonum interoperability

// GonumOptimizer adapts a gonum optimize.Method to the Optimizer
// interface.
//
// Example:
//
//	opt := &optim.GonumOptimizer{Method: &optimize.LBFGS{}}
//	final, err := network.Train(predictors, responses, opt)
type GonumOptimizer = optim.GonumOptimizer

// Minimize drives a gonum optimize.Method against an Objective over its
// whole stored dataset. A nil settings uses gonum's defaults; a nil
// method selects one automatically.
func Minimize(objective Objective, parameters []float64, method optimize.Method, settings *optimize.Settings) (float64, error) {
	return optim.Minimize(objective, parameters, method, settings)
}
