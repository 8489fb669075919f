// Package optim implements first-order optimizers driven by a
// finite-difference gradient estimate.
//
// This package provides:
//   - Model, Dataset, Problem: what is being fitted
//   - MSE and Loss: the default data-fitting loss
//   - Gradient: the coordinate-wise forward difference
//   - Rule/State: update rules (SGD, Momentum, AdaGrad, RMSprop, Adam)
//   - Run: the shared iteration loop returning loss and time traces
//
// No analytic derivatives are needed: every iteration evaluates the loss
// once at the current parameters and once more per parameter.
//
// Example usage:
//
//	poly := optim.ScalarFunc[float64](func(x float64, c []float64) float64 {
//	    return c[0] + c[1]*x + c[2]*x*x
//	})
//	data, _ := optim.ScalarDataset(xs, ys)
//	problem := optim.Problem[float64]{Data: data, Model: poly}
//
//	cfg := optim.DefaultConfig()
//	cfg.LR = 0.1
//	res, err := optim.RunAdam(ctx, problem, initial, cfg, optim.DefaultAdam())
package optim

import (
	"log/slog"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/born-ml/descent/internal/parallel"
)

// Rule is an immutable description of an update rule and its
// hyperparameters.
//
// A Rule never carries per-run state: NewState allocates zeroed
// accumulators for one run, so a single Rule value may serve concurrent
// runs.
type Rule interface {
	// Name returns the registry name of the rule (e.g. "adam").
	Name() string

	// Validate reports ErrInvalidHyperparameter for out-of-range values.
	Validate() error

	// NewState allocates zero-initialized accumulators for n parameters.
	NewState(n int) State
}

// State holds the per-parameter accumulators of one run.
type State interface {
	// Step updates the accumulators with grad and applies the update to
	// params in place. Both slices have the length given to NewState.
	Step(params, grad []float64, lr float64)
}

// Observer is called at the end of every completed iteration with the
// 1-based iteration number and the loss recorded at its start.
type Observer func(iter int, loss float64)

// Config holds the settings shared by every rule.
type Config struct {
	LR         float64          // Step size η (default: 1)
	Dx         float64          // Finite-difference step (default: 1e-5)
	Iterations int              // Number of iterations (default: 1000)
	Gradient   GradientMode     // Gradient estimate (default: Delta)
	Workers    parallel.Config  // Fan-out of the gradient coordinates
	Logger     *slog.Logger     // Run logger; nil discards
	LogEvery   int              // Log every N iterations; 0 logs start and finish only
	Observer   Observer         // Optional per-iteration callback
	Clock      func() time.Time // Time source for the time trace (default: time.Now)
}

// DefaultConfig returns the default run settings.
//
// Gradient coordinates run sequentially by default; set Workers to
// parallel.DefaultConfig() to spread them over CPUs. NumWorkers bounds the
// fan-out in every GradientMode.
func DefaultConfig() Config {
	return Config{
		LR:         1,
		Dx:         1e-5,
		Iterations: 1000,
		Gradient:   Delta,
		Workers:    parallel.Sequential(),
	}
}

// Validate reports ErrInvalidHyperparameter for settings a run cannot use.
//
// Zero values are not replaced by defaults: start from DefaultConfig.
func (c Config) Validate() error {
	if c.Iterations < 1 {
		return errors.Wrapf(ErrInvalidHyperparameter, "iterations must be >= 1 (got %d)", c.Iterations)
	}
	if c.Dx == 0 || !finite(c.Dx) {
		return errors.Wrapf(ErrInvalidHyperparameter, "dx must be finite and non-zero (got %v)", c.Dx)
	}
	if !finite(c.LR) {
		return errors.Wrapf(ErrInvalidHyperparameter, "lr must be finite (got %v)", c.LR)
	}
	if c.LogEvery < 0 {
		return errors.Wrapf(ErrInvalidHyperparameter, "log every must be >= 0 (got %d)", c.LogEvery)
	}
	switch c.Gradient {
	case Delta, Forward, Central:
	default:
		return errors.Wrapf(ErrInvalidHyperparameter, "unknown gradient mode %v", c.Gradient)
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (c Config) clock() func() time.Time {
	if c.Clock != nil {
		return c.Clock
	}
	return time.Now
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// checkDecay validates a decay rate in [0, 1).
func checkDecay(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v >= 1 {
		return errors.Wrapf(ErrInvalidHyperparameter, "%s must be in [0, 1) (got %v)", name, v)
	}
	return nil
}

// checkEps validates a division guard. Zero is rejected: a zero gradient
// coordinate would compute 0/0.
func checkEps(v float64) error {
	if !finite(v) || v <= 0 {
		return errors.Wrapf(ErrInvalidHyperparameter, "eps must be finite and > 0 (got %v)", v)
	}
	return nil
}
