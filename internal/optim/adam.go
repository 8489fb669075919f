package optim

import "math"

// AdamConfig holds configuration for the Adam rule.
//
// Adam combines momentum with RMSprop scaling and corrects both moving
// averages for their zero initialization:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)
//
// t counts steps from 1, so m_hat equals the gradient on the first step.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type AdamConfig struct {
	Betas [2]float64 // Decay of the first and second moments (default: [0.96, 0.96])
	Eps   float64    // Division guard (default: 1e-5)
}

// DefaultAdam returns the default Adam rule.
func DefaultAdam() AdamConfig {
	return AdamConfig{Betas: [2]float64{0.96, 0.96}, Eps: 1e-5}
}

// Name returns "adam".
func (AdamConfig) Name() string { return "adam" }

// Validate checks both betas and Eps.
func (c AdamConfig) Validate() error {
	if err := checkDecay("beta1", c.Betas[0]); err != nil {
		return err
	}
	if err := checkDecay("beta2", c.Betas[1]); err != nil {
		return err
	}
	return checkEps(c.Eps)
}

// NewState allocates zero moments with the step counter at 0.
func (c AdamConfig) NewState(n int) State {
	return &adamState{
		beta1: c.Betas[0],
		beta2: c.Betas[1],
		eps:   c.Eps,
		m:     make([]float64, n),
		v:     make([]float64, n),
	}
}

type adamState struct {
	beta1 float64
	beta2 float64
	eps   float64
	t     int       // Timestep for bias correction
	m     []float64 // First moment estimates
	v     []float64 // Second moment estimates
}

func (s *adamState) Step(params, grad []float64, lr float64) {
	s.t++

	biasCorrection1 := 1 - math.Pow(s.beta1, float64(s.t))
	biasCorrection2 := 1 - math.Pow(s.beta2, float64(s.t))

	for i, g := range grad {
		s.m[i] = s.beta1*s.m[i] + (1-s.beta1)*g
		s.v[i] = s.beta2*s.v[i] + (1-s.beta2)*(g*g)

		mHat := s.m[i] / biasCorrection1
		vHat := s.v[i] / biasCorrection2

		params[i] -= lr * mHat / (math.Sqrt(vHat) + s.eps)
	}
}
