// Package nn implements the feed-forward network evaluator.
//
// This package provides:
//   - Shape: layer widths and the parameter-count formula
//   - Network: the layered (W, b) view rebuilt from a flat parameter vector
//   - Activation: pluggable element-wise nonlinearity
//   - Model: adapter exposing a network shape as an optimizer model
//   - InitParams: seeded Xavier initialization of a parameter vector
//
// The network has no trainable state of its own. Every evaluation starts
// from a flat []float64, which is what the optimizers in internal/optim
// update.
package nn

import "github.com/pkg/errors"

// Model adapts a network shape to the optimizer model contract: it maps an
// input vector and a parameter vector to the network output.
//
// Model is stateless and safe for concurrent use.
type Model struct {
	shape      Shape
	activation Activation
	applyFinal bool
}

// NewModel creates a model evaluating networks of the given shape.
//
// The shape is validated lazily by Check and NumParams consumers; an
// invalid shape makes Check fail with ErrShapeMismatch.
func NewModel(shape Shape, phi Activation, applyFinal bool) *Model {
	if phi == nil {
		phi = Identity
	}
	return &Model{
		shape:      shape.Clone(),
		activation: phi,
		applyFinal: applyFinal,
	}
}

// Shape returns a copy of the model shape.
func (m *Model) Shape() Shape {
	return m.shape.Clone()
}

// NumParams returns the parameter vector length the model expects.
func (m *Model) NumParams() int {
	return m.shape.NumParams()
}

// Check validates one input together with a parameter vector.
func (m *Model) Check(x []float64, params []float64) error {
	if err := m.shape.Validate(); err != nil {
		return err
	}
	if want := m.shape.NumParams(); len(params) != want {
		return errors.Wrapf(ErrShapeMismatch, "shape %v needs %d parameters, got %d", []int(m.shape), want, len(params))
	}
	if len(x) != m.shape.In() {
		return errors.Wrapf(ErrShapeMismatch, "input has %d values, network expects %d", len(x), m.shape.In())
	}
	return nil
}

// Eval builds the network for params and evaluates it on x.
//
// Eval panics if x or params do not satisfy Check. The optimizers run
// Check on every sample before the first iteration.
func (m *Model) Eval(x []float64, params []float64) []float64 {
	net, err := NewNetwork(m.shape, m.activation, m.applyFinal, params)
	if err != nil {
		panic(err)
	}
	out, err := net.Forward(x)
	if err != nil {
		panic(err)
	}
	return out
}

// Bind builds the network for params once and returns an evaluator reusing
// it for every sample of a loss evaluation.
func (m *Model) Bind(params []float64) (func(x []float64) []float64, error) {
	net, err := NewNetwork(m.shape, m.activation, m.applyFinal, params)
	if err != nil {
		return nil, err
	}
	return net.forward, nil
}

// Network builds the network for params. It is a convenience for
// inspecting fitted parameters.
func (m *Model) Network(params []float64) (*Network, error) {
	return NewNetwork(m.shape, m.activation, m.applyFinal, params)
}
