// Copyright 2026 Flint ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ffn

import (
	"gonum.org/v1/gonum/mat"

	"github.com/flint-ml/flint/internal/ffn"
	"github.com/flint-ml/flint/internal/loss"
	"github.com/flint-ml/flint/internal/weights"
)

// Network is a feed-forward neural network container.
type Network = ffn.Network

// DatasetObjective adapts a network and a stored dataset to the
// differentiable-objective contract optimizers consume.
type DatasetObjective = ffn.DatasetObjective

// State tracks how much of a network's lazy initialization has run.
type State = ffn.State

// Lazy-initialization states, in order.
const (
	Unconfigured       = ffn.Unconfigured
	DimensionsResolved = ffn.DimensionsResolved
	WeightsBound       = ffn.WeightsBound
	Ready              = ffn.Ready
)

// ConfigurationError reports a network that cannot run the requested
// operation in its current configuration.
type ConfigurationError = ffn.ConfigurationError

// DimensionMismatchError reports input data whose flat size disagrees with
// the network's configured input dimensions.
type DimensionMismatchError = ffn.DimensionMismatchError

// New creates an empty network. A nil outputLayer defaults to mean squared
// error; a nil initializer defaults to uniform random weights in [-1, 1).
//
// Example:
//
//	network := ffn.New(loss.NewMeanSquaredError(), weights.NewRandom(-1, 1))
//	network.Add(layer.NewLinear(16))
//	network.Add(layer.NewTanh())
//	network.Add(layer.NewLinear(1))
func New(outputLayer loss.Loss, initializer weights.Initializer) *Network {
	return ffn.New(outputLayer, initializer)
}

// NewDatasetObjective validates the network against the dataset and returns
// the optimizer-facing adapter. Train builds one internally; constructing
// one directly is useful for probing the objective without an optimizer.
func NewDatasetObjective(network *Network, predictors, responses *mat.Dense) (*DatasetObjective, error) {
	return ffn.NewDatasetObjective(network, predictors, responses)
}

// Load reads a network from a file written by Network.Save.
func Load(path string) (*Network, error) {
	return ffn.Load(path)
}
