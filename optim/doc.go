// Copyright 2026 Flint ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training networks.
//
// # Overview
//
// This package contains:
//   - SGD: mini-batch stochastic gradient descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - GonumOptimizer / Minimize: adapters driving any gonum
//     optimize.Method against an Objective
//   - Objective and Optimizer interfaces for custom implementations
//
// Optimizers never touch a network's layers directly. They see a flat
// parameter buffer and the Objective contract; because every layer's
// weight view aliases that buffer, in-place updates are immediately
// visible to the model.
//
// # Basic Usage
//
//	import (
//	    "github.com/flint-ml/flint/ffn"
//	    "github.com/flint-ml/flint/optim"
//	)
//
//	func main() {
//	    optimizer := optim.NewSGD(optim.SGDConfig{
//	        StepSize:      0.01,
//	        BatchSize:     32,
//	        MaxIterations: 10000,
//	    })
//	    final, err := network.Train(predictors, responses, optimizer)
//	}
//
// # Mini-Batch Semantics
//
// Each iteration visits one contiguous mini-batch of the objective's
// stored examples, cycling from the start once the dataset is exhausted.
// With Shuffle enabled and an objective that supports it, examples are
// reordered at the start of every pass.
//
// # Gonum Methods
//
// Full-dataset methods from gonum (gradient descent, BFGS, L-BFGS, CG)
// plug in through GonumOptimizer:
//
//	opt := &optim.GonumOptimizer{Method: &optimize.LBFGS{}}
//	final, err := network.Train(predictors, responses, opt)
package optim
