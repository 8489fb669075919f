package optim

import "math"

// AdaGradConfig scales each coordinate by the root of its accumulated
// squared gradients.
//
// Update rule:
//
//	sum = sum + gradient²
//	param = param - lr / (sqrt(sum) + eps) * gradient
type AdaGradConfig struct {
	Eps float64 // Division guard (default: 1e-5)
}

// DefaultAdaGrad returns the default AdaGrad rule.
func DefaultAdaGrad() AdaGradConfig {
	return AdaGradConfig{Eps: 1e-5}
}

// Name returns "adagrad".
func (AdaGradConfig) Name() string { return "adagrad" }

// Validate checks Eps.
func (c AdaGradConfig) Validate() error {
	return checkEps(c.Eps)
}

// NewState allocates a zero squared-gradient sum.
func (c AdaGradConfig) NewState(n int) State {
	return &adagradState{eps: c.Eps, sumSquares: make([]float64, n)}
}

type adagradState struct {
	eps        float64
	sumSquares []float64
}

func (s *adagradState) Step(params, grad []float64, lr float64) {
	for i, g := range grad {
		s.sumSquares[i] += g * g
		params[i] -= lr / (math.Sqrt(s.sumSquares[i]) + s.eps) * g
	}
}
