package optim

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/descent/internal/parallel"
)

// GradientMode selects how the per-parameter gradient is estimated.
type GradientMode int

const (
	// Delta is the un-normalized forward difference
	//
	//	g[i] = loss(params + dx·e_i) - loss(params)
	//
	// It is not divided by dx: the step size of a rule absorbs the scale.
	Delta GradientMode = iota

	// Forward is the forward-difference derivative (Delta / dx), computed
	// with gonum's fd package.
	Forward

	// Central is the central-difference derivative
	// (loss(params + dx·e_i) - loss(params - dx·e_i)) / 2dx.
	Central
)

// String returns the lower-case mode name.
func (m GradientMode) String() string {
	switch m {
	case Delta:
		return "delta"
	case Forward:
		return "forward"
	case Central:
		return "central"
	default:
		return fmt.Sprintf("GradientMode(%d)", int(m))
	}
}

// ParseGradientMode parses a mode name as returned by String. The empty
// string selects Delta.
func ParseGradientMode(s string) (GradientMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "delta":
		return Delta, nil
	case "forward":
		return Forward, nil
	case "central":
		return Central, nil
	default:
		return Delta, errors.Wrapf(ErrInvalidHyperparameter, "unknown gradient mode %q", s)
	}
}

// Gradient estimates the un-normalized forward difference of the problem
// loss at params, given loss0 = loss(params).
//
// Each coordinate is evaluated on its own perturbed copy of params, holding
// every other coordinate fixed. Coordinates are independent and may be
// spread over workers; results are gathered by index and every loss
// reduction stays sequential, so the output does not depend on workers.
func Gradient[X any](p Problem[X], params []float64, loss0, dx float64, workers parallel.Config) []float64 {
	lossFn := p.lossFunc()
	return parallel.Map(len(params), func(i int) float64 {
		return lossFn(p.Data, p.Model, perturb(params, i, dx)) - loss0
	}, workers)
}

// perturb returns a copy of params with params[i] shifted by dx.
func perturb(params []float64, i int, dx float64) []float64 {
	shifted := make([]float64, len(params))
	copy(shifted, params)
	shifted[i] += dx
	return shifted
}

// derivative estimates a true derivative with gonum's fd package, one
// coordinate per work item so workers bounds the fan-out as in Gradient.
func derivative[X any](p Problem[X], params []float64, loss0, dx float64, mode GradientMode, workers parallel.Config) []float64 {
	lossFn := p.lossFunc()
	settings := &fd.Settings{Step: dx}
	switch mode {
	case Central:
		settings.Formula = fd.Central
	default:
		settings.Formula = fd.Forward
		settings.OriginKnown = true
		settings.OriginValue = loss0
	}

	return parallel.Map(len(params), func(i int) float64 {
		x := make([]float64, len(params))
		copy(x, params)
		return fd.Derivative(func(v float64) float64 {
			x[i] = v
			return lossFn(p.Data, p.Model, x)
		}, params[i], settings)
	}, workers)
}

// estimate dispatches on the configured gradient mode.
func estimate[X any](p Problem[X], params []float64, loss0 float64, cfg Config) []float64 {
	if cfg.Gradient == Delta {
		return Gradient(p, params, loss0, cfg.Dx, cfg.Workers)
	}
	return derivative(p, params, loss0, cfg.Dx, cfg.Gradient, cfg.Workers)
}
