// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/descent/internal/nn"
)

// ErrShapeMismatch is returned when a shape, an input or a parameter vector
// has the wrong length.
var ErrShapeMismatch = nn.ErrShapeMismatch

// Shape lists the layer widths (n0, ..., nk) of a network.
type Shape = nn.Shape

// Activation is an element-wise nonlinearity such as math.Tanh.
type Activation = nn.Activation

// Identity returns its input unchanged.
func Identity(x float64) float64 {
	return nn.Identity(x)
}

// Network

// Network is the layered view of a flat parameter vector.
type Network = nn.Network

// Layer is one (W, b) pair of a Network.
type Layer = nn.Layer

// NewNetwork builds the layered view of params for shape.
//
// phi is applied after every layer except the last; applyFinal applies it
// to the output layer as well. A nil phi is Identity.
//
// Example:
//
//	net, err := nn.NewNetwork(nn.Shape{2, 3, 1}, math.Tanh, false, params)
//	out, err := net.Forward([]float64{0.5, -1})
func NewNetwork(shape Shape, phi Activation, applyFinal bool, params []float64) (*Network, error) {
	return nn.NewNetwork(shape, phi, applyFinal, params)
}

// Model

// Model adapts a network shape to the optimizers in package optim.
type Model = nn.Model

// NewModel creates a model evaluating networks of the given shape.
//
// Example:
//
//	model := nn.NewModel(nn.Shape{1, 8, 1}, math.Tanh, false)
//	problem := optim.Problem[[]float64]{Data: data, Model: model}
func NewModel(shape Shape, phi Activation, applyFinal bool) *Model {
	return nn.NewModel(shape, phi, applyFinal)
}

// InitParams draws a parameter vector for shape from rng: Xavier-uniform
// weights and zero biases.
func InitParams(shape Shape, rng *rand.Rand) ([]float64, error) {
	return nn.InitParams(shape, rng)
}
