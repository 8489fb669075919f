package optim

import "math"

// RMSpropConfig scales each coordinate by the root of a moving average of
// its squared gradients.
//
// Update rule:
//
//	avg = beta * avg + (1-beta) * gradient²
//	param = param - lr / (sqrt(avg) + eps) * gradient
type RMSpropConfig struct {
	Beta float64 // Decay of the moving average (default: 0.97, range: [0, 1))
	Eps  float64 // Division guard (default: 1e-5)
}

// DefaultRMSprop returns the default RMSprop rule.
func DefaultRMSprop() RMSpropConfig {
	return RMSpropConfig{Beta: 0.97, Eps: 1e-5}
}

// Name returns "rmsprop".
func (RMSpropConfig) Name() string { return "rmsprop" }

// Validate checks Beta and Eps.
func (c RMSpropConfig) Validate() error {
	if err := checkDecay("beta", c.Beta); err != nil {
		return err
	}
	return checkEps(c.Eps)
}

// NewState allocates a zero moving average.
func (c RMSpropConfig) NewState(n int) State {
	return &rmspropState{beta: c.Beta, eps: c.Eps, movingSumSquares: make([]float64, n)}
}

type rmspropState struct {
	beta             float64
	eps              float64
	movingSumSquares []float64
}

func (s *rmspropState) Step(params, grad []float64, lr float64) {
	for i, g := range grad {
		s.movingSumSquares[i] = s.beta*s.movingSumSquares[i] + (1-s.beta)*(g*g)
		params[i] -= lr / (math.Sqrt(s.movingSumSquares[i]) + s.eps) * g
	}
}
