// Copyright 2026 Flint ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package weights

import (
	"github.com/flint-ml/flint/internal/weights"
)

// Initializer is the initialization-rule contract: it fills one layer's
// view of a freshly allocated weight buffer with starting values.
type Initializer = weights.Initializer

// Random initializes weights uniformly in [Low, High).
type Random = weights.Random

// NewRandom creates a uniform initializer over [low, high).
//
// Example:
//
//	network := ffn.New(nil, weights.NewRandom(-0.5, 0.5))
func NewRandom(low, high float64) *Random {
	return weights.NewRandom(low, high)
}

// Gaussian initializes weights from a normal distribution.
type Gaussian = weights.Gaussian

// NewGaussian creates a normal initializer with the given mean and
// standard deviation.
//
// Example:
//
//	network := ffn.New(nil, weights.NewGaussian(0, 0.1))
func NewGaussian(mean, stdDev float64) *Gaussian {
	return weights.NewGaussian(mean, stdDev)
}

// Const initializes every weight to a fixed value.
type Const = weights.Const

// NewConst creates a constant initializer. Mostly useful for tests and
// for reproducing a known starting point.
func NewConst(value float64) *Const {
	return weights.NewConst(value)
}
