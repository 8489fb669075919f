// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"context"
	"io"

	"github.com/born-ml/descent/internal/config"
	"github.com/born-ml/descent/internal/optim"
	"github.com/born-ml/descent/internal/parallel"
)

// Errors returned by the optimizers. Match them with errors.Is.
var (
	ErrEmptyDataset          = optim.ErrEmptyDataset
	ErrDimensionMismatch     = optim.ErrDimensionMismatch
	ErrInvalidHyperparameter = optim.ErrInvalidHyperparameter
)

// Problem definition

// Model is a parametric function fitted by the optimizers.
type Model[X any] = optim.Model[X]

// ModelFunc adapts a vector-valued function to Model.
type ModelFunc[X any] = optim.ModelFunc[X]

// ScalarFunc adapts a scalar-valued function, such as a polynomial, to Model.
type ScalarFunc[X any] = optim.ScalarFunc[X]

// Checker is implemented by models that validate inputs before a run.
type Checker[X any] = optim.Checker[X]

// Sized is implemented by models with a fixed parameter count.
type Sized = optim.Sized

// Binder is implemented by models that prepare a parameter vector once per
// loss evaluation.
type Binder[X any] = optim.Binder[X]

// Dataset pairs inputs with reference outputs.
type Dataset[X any] = optim.Dataset[X]

// Problem bundles the data, the model and the loss.
type Problem[X any] = optim.Problem[X]

// LossFunc aggregates the error of a model over a dataset.
type LossFunc[X any] = optim.LossFunc[X]

// NewDataset creates a dataset and validates it.
func NewDataset[X any](xs []X, ys [][]float64) (Dataset[X], error) {
	return optim.NewDataset(xs, ys)
}

// ScalarDataset creates a dataset whose targets are single numbers.
func ScalarDataset[X any](xs []X, ys []float64) (Dataset[X], error) {
	return optim.ScalarDataset(xs, ys)
}

// MSE is the mean over samples of the summed squared residual.
func MSE[X any](data Dataset[X], model Model[X], params []float64) float64 {
	return optim.MSE(data, model, params)
}

// Loss validates problem against params and evaluates its loss.
func Loss[X any](problem Problem[X], params []float64) (float64, error) {
	return optim.Loss(problem, params)
}

// Gradient

// GradientMode selects how the gradient is estimated.
type GradientMode = optim.GradientMode

// Gradient modes.
const (
	Delta   = optim.Delta   // loss(p + dx·e_i) - loss(p), not divided by dx
	Forward = optim.Forward // forward-difference derivative
	Central = optim.Central // central-difference derivative
)

// ParseGradientMode parses "delta", "forward" or "central".
func ParseGradientMode(s string) (GradientMode, error) {
	return optim.ParseGradientMode(s)
}

// Workers controls the fan-out of gradient coordinates over goroutines.
type Workers = parallel.Config

// DefaultWorkers returns a fan-out sized by runtime.NumCPU.
func DefaultWorkers() Workers {
	return parallel.DefaultConfig()
}

// SequentialWorkers evaluates every coordinate on the calling goroutine.
func SequentialWorkers() Workers {
	return parallel.Sequential()
}

// Gradient estimates the un-normalized forward difference of the problem
// loss at params, given loss0 = loss(params). workers controls the fan-out
// over coordinates; the result does not depend on it.
func Gradient[X any](problem Problem[X], params []float64, loss0, dx float64, workers Workers) []float64 {
	return optim.Gradient(problem, params, loss0, dx, workers)
}

// Running

// Config holds the settings shared by every rule.
type Config = optim.Config

// Observer is called after every completed iteration.
type Observer = optim.Observer

// Result is the outcome of one run: final parameters, loss and time traces.
type Result = optim.Result

// DefaultConfig returns LR=1, Dx=1e-5, Iterations=1000 and a sequential
// Delta gradient.
func DefaultConfig() Config {
	return optim.DefaultConfig()
}

// Rule is an immutable update rule with its hyperparameters.
type Rule = optim.Rule

// State holds the accumulators of one run.
type State = optim.State

// Run fits problem starting from initial using rule.
//
// Example:
//
//	rule, _ := optim.NewRule("rmsprop", optim.Hyperparameters{})
//	res, err := optim.Run(ctx, problem, initial, rule, optim.DefaultConfig())
func Run[X any](ctx context.Context, problem Problem[X], initial []float64, rule Rule, cfg Config) (*Result, error) {
	return optim.Run(ctx, problem, initial, rule, cfg)
}

// Rules

// SGDConfig is the plain gradient step ("basic").
type SGDConfig = optim.SGDConfig

// MomentumConfig tracks a moving average of the gradient.
type MomentumConfig = optim.MomentumConfig

// AdaGradConfig scales by the accumulated squared gradient.
type AdaGradConfig = optim.AdaGradConfig

// RMSpropConfig scales by a moving average of the squared gradient.
type RMSpropConfig = optim.RMSpropConfig

// AdamConfig combines both moments with bias correction.
type AdamConfig = optim.AdamConfig

// DefaultMomentum returns Beta=0.99 with the raw-gradient step.
func DefaultMomentum() MomentumConfig { return optim.DefaultMomentum() }

// DefaultAdaGrad returns Eps=1e-5.
func DefaultAdaGrad() AdaGradConfig { return optim.DefaultAdaGrad() }

// DefaultRMSprop returns Beta=0.97, Eps=1e-5.
func DefaultRMSprop() RMSpropConfig { return optim.DefaultRMSprop() }

// DefaultAdam returns Betas=[0.96, 0.96], Eps=1e-5.
func DefaultAdam() AdamConfig { return optim.DefaultAdam() }

// RunBasic runs the plain gradient step.
func RunBasic[X any](ctx context.Context, problem Problem[X], initial []float64, cfg Config) (*Result, error) {
	return optim.RunBasic(ctx, problem, initial, cfg)
}

// RunMomentum runs the momentum rule.
func RunMomentum[X any](ctx context.Context, problem Problem[X], initial []float64, cfg Config, rule MomentumConfig) (*Result, error) {
	return optim.RunMomentum(ctx, problem, initial, cfg, rule)
}

// RunAdaGrad runs the AdaGrad rule.
func RunAdaGrad[X any](ctx context.Context, problem Problem[X], initial []float64, cfg Config, rule AdaGradConfig) (*Result, error) {
	return optim.RunAdaGrad(ctx, problem, initial, cfg, rule)
}

// RunRMSprop runs the RMSprop rule.
func RunRMSprop[X any](ctx context.Context, problem Problem[X], initial []float64, cfg Config, rule RMSpropConfig) (*Result, error) {
	return optim.RunRMSprop(ctx, problem, initial, cfg, rule)
}

// RunAdam runs the Adam rule.
//
// Example:
//
//	cfg := optim.DefaultConfig()
//	cfg.LR = 0.05
//	cfg.Iterations = 500
//	res, err := optim.RunAdam(ctx, problem, initial, cfg, optim.DefaultAdam())
func RunAdam[X any](ctx context.Context, problem Problem[X], initial []float64, cfg Config, rule AdamConfig) (*Result, error) {
	return optim.RunAdam(ctx, problem, initial, cfg, rule)
}

// Registry

// Hyperparameters carries rule settings by name; nil fields keep defaults.
type Hyperparameters = optim.Hyperparameters

// RuleFactory builds a rule from named hyperparameters.
type RuleFactory = optim.RuleFactory

// NewRule builds the named rule: basic, momentum, adagrad, rmsprop, adam or
// any name added with RegisterRule.
func NewRule(name string, hp Hyperparameters) (Rule, error) {
	return optim.NewRule(name, hp)
}

// RegisterRule makes a custom rule available to NewRule.
func RegisterRule(name string, f RuleFactory) error {
	return optim.RegisterRule(name, f)
}

// RuleNames lists the registered rule names.
func RuleNames() []string {
	return optim.RuleNames()
}

// Run files

// FileConfig is a run configuration read from YAML.
type FileConfig = config.Config

// Overrides replaces FileConfig values with non-zero command-line values.
type Overrides = config.Overrides

// LoadConfig reads and validates a YAML run configuration.
func LoadConfig(path string) (*FileConfig, error) {
	return config.Load(path)
}

// ParseConfig decodes and validates a YAML run configuration.
func ParseConfig(r io.Reader) (*FileConfig, error) {
	return config.Parse(r)
}
