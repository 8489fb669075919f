package nn

import (
	"gonum.org/v1/gonum/mat"
)

// Layer is one affine map of a network: z = W·x + b.
//
// W has shape (out, in) with one row per output neuron, each row holding
// that neuron's incoming weights. b has one entry per output neuron.
type Layer struct {
	Weight *mat.Dense
	Bias   *mat.VecDense
}

// unpackLayer reads one layer from the front of params: out groups of in
// weights, followed by out biases. It returns the layer and the number of
// values consumed. The layer owns copies of the values.
func unpackLayer(in, out int, params []float64) (Layer, int) {
	nw := in * out

	w := make([]float64, nw)
	copy(w, params[:nw])

	b := make([]float64, out)
	copy(b, params[nw:nw+out])

	return Layer{
		Weight: mat.NewDense(out, in, w),
		Bias:   mat.NewVecDense(out, b),
	}, nw + out
}

// In returns the number of inputs the layer expects.
func (l Layer) In() int {
	_, c := l.Weight.Dims()
	return c
}

// Out returns the number of neurons in the layer.
func (l Layer) Out() int {
	r, _ := l.Weight.Dims()
	return r
}

// forward computes W·x + b into a fresh vector.
func (l Layer) forward(x *mat.VecDense) *mat.VecDense {
	z := mat.NewVecDense(l.Out(), nil)
	z.MulVec(l.Weight, x)
	z.AddVec(z, l.Bias)
	return z
}

// pack appends the layer's weights (row by row) and biases to dst.
func (l Layer) pack(dst []float64) []float64 {
	r, c := l.Weight.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			dst = append(dst, l.Weight.At(i, j))
		}
	}
	for i := 0; i < r; i++ {
		dst = append(dst, l.Bias.AtVec(i))
	}
	return dst
}

// clone returns a deep copy of the layer.
func (l Layer) clone() Layer {
	return Layer{
		Weight: mat.DenseCopyOf(l.Weight),
		Bias:   mat.VecDenseCopyOf(l.Bias),
	}
}
