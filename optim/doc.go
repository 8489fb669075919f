// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim fits parametric models with first-order optimizers driven by
// a finite-difference gradient.
//
// # Overview
//
// This package contains:
//   - Problem, Dataset, Model: what is being fitted
//   - MSE and Loss: the default loss
//   - Gradient: the un-normalized forward difference
//   - Rules: basic, momentum, AdaGrad, RMSprop and Adam
//   - Run and the Run* variants, returning parameters and loss/time traces
//   - LoadConfig: YAML run files
//
// # Basic Usage
//
//	import "github.com/born-ml/descent/optim"
//
//	func main() {
//	    poly := optim.ScalarFunc[float64](func(x float64, c []float64) float64 {
//	        return c[0] + c[1]*x + c[2]*x*x
//	    })
//	    data, _ := optim.ScalarDataset(xs, ys)
//	    problem := optim.Problem[float64]{Data: data, Model: poly}
//
//	    cfg := optim.DefaultConfig()
//	    cfg.LR = 0.05
//	    res, err := optim.RunAdam(ctx, problem, []float64{0, 0, 0}, cfg, optim.DefaultAdam())
//	    // res.Params, res.Losses, res.Times
//	}
//
// # Gradient Scale
//
// The default gradient is not divided by dx:
//
//	g[i] = loss(params + dx·e_i) - loss(params)
//
// so with dx = 1e-5 the plain and momentum rules need a step size around
// 1/dx larger than with a true derivative. AdaGrad, RMSprop and Adam divide
// the scale out. Set Config.Gradient to Forward or Central for a true
// derivative.
//
// # Momentum
//
// MomentumConfig tracks a velocity but, by default, steps along the raw
// gradient, which makes it identical to the basic rule. Set UseVelocity for
// classical momentum:
//
//	optim.RunMomentum(ctx, problem, initial, cfg, optim.MomentumConfig{Beta: 0.9, UseVelocity: true})
//
// # Run Files
//
//	// run.yaml
//	optimizer: rmsprop
//	lr: 0.01
//	iterations: 2000
//	beta: 0.9
//
//	file, err := optim.LoadConfig("run.yaml")
//	rule, err := file.Rule()
//	cfg, err := file.RunConfig(slog.Default())
//	res, err := optim.Run(ctx, problem, initial, rule, cfg)
package optim
