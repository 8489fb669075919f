package nn

import "github.com/pkg/errors"

// Shape lists the layer widths (n0, n1, ..., nk) of a feed-forward network.
//
// n0 is the input width and nk the output width; every other entry is a
// hidden layer. A shape needs at least two widths and every width must be
// positive.
type Shape []int

// Validate reports whether the shape describes a buildable network.
func (s Shape) Validate() error {
	if len(s) < 2 {
		return errors.Wrapf(ErrShapeMismatch, "shape %v: need at least input and output widths", []int(s))
	}
	for i, n := range s {
		if n < 1 {
			return errors.Wrapf(ErrShapeMismatch, "shape %v: width %d at position %d must be positive", []int(s), n, i)
		}
	}
	return nil
}

// NumParams returns the length L of a parameter vector for this shape:
// one weight per connection plus one bias per neuron, for every layer.
//
// For (1, 2, 2, 1) this is (1+1)*2 + (2+1)*2 + (2+1)*1 = 13.
func (s Shape) NumParams() int {
	total := 0
	for i := 1; i < len(s); i++ {
		total += (s[i-1] + 1) * s[i]
	}
	return total
}

// In returns the input width.
func (s Shape) In() int {
	return s[0]
}

// Out returns the output width.
func (s Shape) Out() int {
	return s[len(s)-1]
}

// NumLayers returns the number of affine layers (len(s) - 1).
func (s Shape) NumLayers() int {
	return len(s) - 1
}

// Clone returns an independent copy of the shape.
func (s Shape) Clone() Shape {
	return append(Shape(nil), s...)
}
