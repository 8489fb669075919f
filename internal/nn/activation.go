package nn

// Activation is an element-wise nonlinearity φ: ℝ → ℝ applied to the affine
// output of a layer.
//
// Activations are plain function values so that any scalar function can be
// plugged in, for example math.Tanh:
//
//	net, err := nn.NewNetwork(nn.Shape{1, 4, 1}, math.Tanh, false, params)
//
// An Activation must be pure: the network calls it concurrently when the
// optimizer fans gradient coordinates out to several workers.
type Activation func(float64) float64

// Identity returns its input unchanged. A network built with Identity and
// no final activation is a composition of affine maps.
func Identity(x float64) float64 {
	return x
}

// apply replaces every element of z with φ(z) in place.
func (a Activation) apply(z []float64) {
	for j, v := range z {
		z[j] = a(v)
	}
}
