// Copyright 2026 Flint ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package loss

import (
	"github.com/flint-ml/flint/internal/loss"
)

// Loss is the output-layer contract: it reduces a prediction batch and a
// target batch to a scalar objective and seeds the backward pass.
type Loss = loss.Loss

// MeanSquaredError computes the squared error summed over features and
// averaged over the batch.
type MeanSquaredError = loss.MeanSquaredError

// NewMeanSquaredError creates an MSE output layer, the default for
// regression targets.
//
// Example:
//
//	network := ffn.New(loss.NewMeanSquaredError(), nil)
func NewMeanSquaredError() *MeanSquaredError {
	return loss.NewMeanSquaredError()
}

// CrossEntropy computes the binary cross-entropy summed over all elements.
type CrossEntropy = loss.CrossEntropy

// NewCrossEntropy creates a cross-entropy output layer. Predictions are
// expected in [0, 1], typically from a final Sigmoid layer.
//
// Example:
//
//	network := ffn.New(loss.NewCrossEntropy(), nil)
func NewCrossEntropy() *CrossEntropy {
	return loss.NewCrossEntropy()
}
