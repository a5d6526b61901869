// Copyright 2026 Flint ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package loss provides output-layer objectives for training networks.
//
// A loss reduces a (features x batch) prediction matrix and a matching
// target matrix to a scalar, and computes the error gradient that seeds
// the network's backward pass.
//
// Available losses:
//   - MeanSquaredError: regression targets
//   - CrossEntropy: binary classification targets in [0, 1]
package loss
