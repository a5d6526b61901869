// Copyright 2026 Flint ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package weights provides weight initialization rules.
//
// A rule fills each layer's view of the network's freshly allocated flat
// parameter buffer with starting values. The network applies the rule
// lazily, the first time a numeric operation needs weights, and again
// whenever the buffer is reallocated.
//
// Available rules:
//   - Random: uniform over [low, high)
//   - Gaussian: normal with configurable mean and standard deviation
//   - Const: every weight set to one value
package weights
