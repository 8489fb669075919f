// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the feed-forward network evaluated by the optimizers.
//
// # Overview
//
// A network of shape (n0, n1, ..., nk) has no parameters of its own. It is
// a view over one flat []float64 of length Shape.NumParams(), unpacked layer
// by layer: the weights of every neuron (one per input), then the biases of
// the layer.
//
//   - Shape: layer widths and the parameter count
//   - Network: Forward evaluation of one parameter vector
//   - Model: the network as an optim.Model over []float64 inputs
//   - InitParams: seeded Xavier initialization
//
// # Basic Usage
//
//	import (
//	    "math"
//	    "math/rand"
//
//	    "github.com/born-ml/descent/nn"
//	    "github.com/born-ml/descent/optim"
//	)
//
//	func main() {
//	    shape := nn.Shape{1, 8, 1}
//	    model := nn.NewModel(shape, math.Tanh, false)
//
//	    params, _ := nn.InitParams(shape, rand.New(rand.NewSource(1)))
//	    data, _ := optim.NewDataset(xs, ys)
//
//	    cfg := optim.DefaultConfig()
//	    cfg.LR = 0.01
//	    res, err := optim.RunAdam(ctx, optim.Problem[[]float64]{Data: data, Model: model},
//	        params, cfg, optim.DefaultAdam())
//	}
//
// # Activations
//
// Identity is the only activation shipped. Any func(float64) float64 can be
// used, for example math.Tanh or a logistic sigmoid:
//
//	sigmoid := func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }
//	model := nn.NewModel(shape, sigmoid, true)
package nn
