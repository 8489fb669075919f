package optim

import (
	"gonum.org/v1/gonum/floats"
)

// SGDConfig is the plain gradient step. It keeps no accumulators.
//
// Update rule:
//
//	param = param - lr * gradient
type SGDConfig struct{}

// Name returns "basic".
func (SGDConfig) Name() string { return "basic" }

// Validate always succeeds: plain SGD has no hyperparameters of its own.
func (SGDConfig) Validate() error { return nil }

// NewState returns the stateless plain step.
func (SGDConfig) NewState(int) State { return sgdState{} }

type sgdState struct{}

func (sgdState) Step(params, grad []float64, lr float64) {
	floats.AddScaled(params, -lr, grad)
}

// MomentumConfig keeps an exponential moving average of the gradient.
//
// Update rule (UseVelocity = false, the default):
//
//	velocity = beta * velocity + (1-beta) * gradient
//	param = param - lr * gradient
//
// The default applies the raw gradient: the velocity is tracked but never
// reaches the parameters, so results are identical to SGDConfig. Set
// UseVelocity to apply classical momentum:
//
//	param = param - lr * velocity
type MomentumConfig struct {
	Beta        float64 // Decay of the velocity (default: 0.99, range: [0, 1))
	UseVelocity bool    // Step along the velocity instead of the raw gradient
}

// DefaultMomentum returns the default momentum rule (literal behaviour).
func DefaultMomentum() MomentumConfig {
	return MomentumConfig{Beta: 0.99}
}

// Name returns "momentum".
func (MomentumConfig) Name() string { return "momentum" }

// Validate checks that Beta is in [0, 1).
func (c MomentumConfig) Validate() error {
	return checkDecay("beta", c.Beta)
}

// NewState allocates a zero velocity.
func (c MomentumConfig) NewState(n int) State {
	return &momentumState{
		beta:        c.Beta,
		useVelocity: c.UseVelocity,
		velocity:    make([]float64, n),
	}
}

type momentumState struct {
	beta        float64
	useVelocity bool
	velocity    []float64
}

func (s *momentumState) Step(params, grad []float64, lr float64) {
	// velocity = beta * velocity + (1-beta) * grad
	floats.Scale(s.beta, s.velocity)
	floats.AddScaled(s.velocity, 1-s.beta, grad)

	if s.useVelocity {
		floats.AddScaled(params, -lr, s.velocity)
		return
	}
	floats.AddScaled(params, -lr, grad)
}
