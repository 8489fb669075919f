package optim

import "context"

// RunBasic runs the plain gradient step.
func RunBasic[X any](ctx context.Context, problem Problem[X], initial []float64, cfg Config) (*Result, error) {
	return Run(ctx, problem, initial, SGDConfig{}, cfg)
}

// RunMomentum runs the momentum rule. See MomentumConfig for the
// UseVelocity switch.
func RunMomentum[X any](ctx context.Context, problem Problem[X], initial []float64, cfg Config, rule MomentumConfig) (*Result, error) {
	return Run(ctx, problem, initial, rule, cfg)
}

// RunAdaGrad runs the AdaGrad rule.
func RunAdaGrad[X any](ctx context.Context, problem Problem[X], initial []float64, cfg Config, rule AdaGradConfig) (*Result, error) {
	return Run(ctx, problem, initial, rule, cfg)
}

// RunRMSprop runs the RMSprop rule.
func RunRMSprop[X any](ctx context.Context, problem Problem[X], initial []float64, cfg Config, rule RMSpropConfig) (*Result, error) {
	return Run(ctx, problem, initial, rule, cfg)
}

// RunAdam runs the Adam rule.
func RunAdam[X any](ctx context.Context, problem Problem[X], initial []float64, cfg Config, rule AdamConfig) (*Result, error) {
	return Run(ctx, problem, initial, rule, cfg)
}
