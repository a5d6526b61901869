// Copyright 2026 Flint ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package layer

import (
	"github.com/flint-ml/flint/internal/layer"
)

// Layer is the capability contract every layer in a network satisfies.
type Layer = layer.Layer

// Spec is the serializable configuration of a single layer.
type Spec = layer.Spec

// Layers

// Linear is a fully connected layer: y = W @ x + b.
type Linear = layer.Linear

// NewLinear creates a fully connected layer producing outSize features per
// example. The input size is inferred when the owning network propagates
// dimensions.
//
// Example:
//
//	network.Add(layer.NewLinear(128))
func NewLinear(outSize int) *Linear {
	return layer.NewLinear(outSize)
}

// LinearNoBias is a fully connected layer without a bias term: y = W @ x.
type LinearNoBias = layer.LinearNoBias

// NewLinearNoBias creates a fully connected layer without bias.
func NewLinearNoBias(outSize int) *LinearNoBias {
	return layer.NewLinearNoBias(outSize)
}

// Dropout randomly zeroes inputs during training and rescales the
// survivors, passing everything through unchanged in inference mode.
type Dropout = layer.Dropout

// NewDropout creates a Dropout layer. ratio is the drop probability and
// must be in [0, 1).
//
// Example:
//
//	network.Add(layer.NewDropout(0.5))
func NewDropout(ratio float64) *Dropout {
	return layer.NewDropout(ratio)
}

// Identity passes its input through unchanged in both directions.
type Identity = layer.Identity

// NewIdentity creates an Identity layer.
func NewIdentity() *Identity {
	return layer.NewIdentity()
}

// Activations

// ReLU applies max(0, x) element-wise.
type ReLU = layer.ReLU

// NewReLU creates a ReLU activation layer.
func NewReLU() *ReLU {
	return layer.NewReLU()
}

// Sigmoid applies 1/(1+exp(-x)) element-wise.
type Sigmoid = layer.Sigmoid

// NewSigmoid creates a Sigmoid activation layer.
func NewSigmoid() *Sigmoid {
	return layer.NewSigmoid()
}

// Tanh applies the hyperbolic tangent element-wise.
type Tanh = layer.Tanh

// NewTanh creates a Tanh activation layer.
func NewTanh() *Tanh {
	return layer.NewTanh()
}
