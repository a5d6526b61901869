// Copyright 2026 Flint ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ffn provides the feed-forward neural network container.
//
// # Overview
//
// A Network owns an ordered sequence of layers, a single flat parameter
// buffer holding every trainable weight, and the cached buffers its
// numeric operations share. Shape inference and weight allocation are
// lazy: they run the first time a numeric operation needs them and rerun
// only when the configuration changes.
//
// Data is column-major: predictors and responses are (features x batch)
// matrices, one example per column.
//
// # Basic Usage
//
//	import (
//	    "gonum.org/v1/gonum/mat"
//
//	    "github.com/flint-ml/flint/ffn"
//	    "github.com/flint-ml/flint/layer"
//	    "github.com/flint-ml/flint/optim"
//	)
//
//	func main() {
//	    network := ffn.New(nil, nil)
//	    network.Add(layer.NewLinear(16))
//	    network.Add(layer.NewTanh())
//	    network.Add(layer.NewLinear(1))
//
//	    // predictors: (features x samples), responses: (outputs x samples)
//	    final, err := network.Train(predictors, responses, optim.NewSGD(optim.SGDConfig{
//	        StepSize:      0.01,
//	        BatchSize:     32,
//	        MaxIterations: 10000,
//	    }))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    predictions, err := network.Predict(testPredictors, 0)
//	}
//
// # Parameter Aliasing
//
// Every layer holds a non-owning view of its slice of the network's flat
// parameter buffer. Optimizers mutate the buffer in place; layers observe
// the mutation through their views with no copying or synchronization
// step. Parameters returns the live buffer for callers that want the same
// access.
//
// # Persistence
//
// Save writes a network's configuration, parameters and input dimensions
// as JSON; Load restores it. Cached activations and readiness state are
// never persisted, so a loaded network re-resolves itself on first use.
package ffn
