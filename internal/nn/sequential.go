package nn

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Network is a feed-forward stack of affine layers with a shared activation.
//
// A Network is rebuilt from a flat parameter vector and never mutated after
// construction, so a single value may be evaluated from many goroutines.
//
// Parameter packing order, per layer i = 1..k:
//
//	sizes[i] groups of sizes[i-1] weights (neuron by neuron)
//	sizes[i] biases
//
// Example:
//
//	net, err := nn.NewNetwork(nn.Shape{1, 2, 2, 1}, math.Tanh, false, params)
//	if err != nil {
//	    return err
//	}
//	y, err := net.Forward([]float64{0.5})
type Network struct {
	shape      Shape
	activation Activation
	applyFinal bool
	layers     []Layer
}

// NewNetwork builds the layered view of params for the given shape.
//
// phi is applied after every layer; after the last layer only when
// applyFinal is true. A nil phi is treated as Identity.
//
// Returns ErrShapeMismatch if the shape is invalid or len(params) differs
// from shape.NumParams().
func NewNetwork(shape Shape, phi Activation, applyFinal bool, params []float64) (*Network, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if want := shape.NumParams(); len(params) != want {
		return nil, errors.Wrapf(ErrShapeMismatch, "shape %v needs %d parameters, got %d", []int(shape), want, len(params))
	}
	return build(shape, phi, applyFinal, params), nil
}

// build assumes shape and params have been validated.
func build(shape Shape, phi Activation, applyFinal bool, params []float64) *Network {
	if phi == nil {
		phi = Identity
	}

	n := &Network{
		shape:      shape.Clone(),
		activation: phi,
		applyFinal: applyFinal,
		layers:     make([]Layer, 0, shape.NumLayers()),
	}

	offset := 0
	for i := 1; i < len(shape); i++ {
		layer, used := unpackLayer(shape[i-1], shape[i], params[offset:])
		n.layers = append(n.layers, layer)
		offset += used
	}

	return n
}

// Forward evaluates the network on a single input vector.
//
// Returns ErrShapeMismatch if len(input) differs from the input width.
// The returned slice has the output width and is owned by the caller.
func (n *Network) Forward(input []float64) ([]float64, error) {
	if len(input) != n.shape.In() {
		return nil, errors.Wrapf(ErrShapeMismatch, "input has %d values, network expects %d", len(input), n.shape.In())
	}
	return n.forward(input), nil
}

// forward assumes len(input) == n.shape.In().
func (n *Network) forward(input []float64) []float64 {
	x := mat.NewVecDense(len(input), append([]float64(nil), input...))

	last := len(n.layers) - 1
	for i, layer := range n.layers {
		z := layer.forward(x)
		if i < last || n.applyFinal {
			n.activation.apply(z.RawVector().Data)
		}
		x = z
	}

	// x is freshly allocated by the last layer and not shared.
	return x.RawVector().Data
}

// Shape returns a copy of the network shape.
func (n *Network) Shape() Shape {
	return n.shape.Clone()
}

// Layers returns deep copies of the network layers.
func (n *Network) Layers() []Layer {
	out := make([]Layer, len(n.layers))
	for i, l := range n.layers {
		out[i] = l.clone()
	}
	return out
}

// Len returns the number of layers.
func (n *Network) Len() int {
	return len(n.layers)
}

// Params flattens the network back into a parameter vector using the same
// packing order NewNetwork reads.
func (n *Network) Params() []float64 {
	out := make([]float64, 0, n.shape.NumParams())
	for _, l := range n.layers {
		out = l.pack(out)
	}
	return out
}
