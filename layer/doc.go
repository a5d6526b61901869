// Copyright 2026 Flint ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package layer provides the building blocks networks are assembled from.
//
// # Overview
//
// This package contains:
//   - Linear, LinearNoBias: fully connected layers
//   - ReLU, Sigmoid, Tanh: element-wise activations
//   - Dropout: training-time regularization
//
// Layers carry no weights of their own. A layer with trainable parameters
// holds a non-owning view of the owning network's flat parameter buffer,
// bound after the network resolves shapes. Construction only fixes the
// hyperparameters; input sizes are inferred from whatever precedes the
// layer.
//
// # Basic Usage
//
//	network := ffn.New(nil, nil)
//	network.Add(layer.NewLinear(64))
//	network.Add(layer.NewReLU())
//	network.Add(layer.NewDropout(0.3))
//	network.Add(layer.NewLinear(10))
package layer
