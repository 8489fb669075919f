package nn_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/descent/internal/nn"
)

func TestShape_NumParams(t *testing.T) {
	tests := []struct {
		name  string
		shape nn.Shape
		want  int
	}{
		{"single affine", nn.Shape{1, 1}, 2},
		{"1-2-2-1", nn.Shape{1, 2, 2, 1}, 13},
		{"1-4-4-1", nn.Shape{1, 4, 4, 1}, 8 + 20 + 5},
		{"1-5-5-5-1", nn.Shape{1, 5, 5, 5, 1}, 10 + 30 + 30 + 6},
		{"3-2", nn.Shape{3, 2}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shape.NumParams())
		})
	}
}

func TestShape_Validate(t *testing.T) {
	assert.NoError(t, nn.Shape{1, 2, 1}.Validate())

	for _, bad := range []nn.Shape{nil, {3}, {1, 0, 1}, {2, -1}} {
		err := bad.Validate()
		assert.True(t, errors.Is(err, nn.ErrShapeMismatch), "shape %v: %v", bad, err)
	}
}

// handPicked is shape (2, 2, 1):
//
//	W1 = [[1 2] [3 4]], b1 = [0.5 -1]
//	W2 = [[2 -1]],      b2 = [0.25]
var handPicked = []float64{1, 2, 3, 4, 0.5, -1, 2, -1, 0.25}

func TestNetwork_HandPickedAffine(t *testing.T) {
	net, err := nn.NewNetwork(nn.Shape{2, 2, 1}, nn.Identity, false, handPicked)
	require.NoError(t, err)

	out, err := net.Forward([]float64{1, 1})
	require.NoError(t, err)

	// z1 = [3.5 6], z2 = 2*3.5 - 6 + 0.25
	assert.Equal(t, []float64{1.25}, out)
}

func TestNetwork_FinalActivation(t *testing.T) {
	double := func(x float64) float64 { return 2 * x }

	withFinal, err := nn.NewNetwork(nn.Shape{2, 2, 1}, double, true, handPicked)
	require.NoError(t, err)
	withoutFinal, err := nn.NewNetwork(nn.Shape{2, 2, 1}, double, false, handPicked)
	require.NoError(t, err)

	// hidden: [7 12]; output z = 14 - 12 + 0.25 = 2.25
	out, err := withoutFinal.Forward([]float64{1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 2.25, out[0], 1e-12)

	out, err = withFinal.Forward([]float64{1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 4.5, out[0], 1e-12)
}

func TestNetwork_MatchesMatrixChain(t *testing.T) {
	shape := nn.Shape{3, 4, 2}
	rng := rand.New(rand.NewSource(7))
	params := make([]float64, shape.NumParams())
	for i := range params {
		params[i] = rng.NormFloat64()
	}

	net, err := nn.NewNetwork(shape, math.Tanh, false, params)
	require.NoError(t, err)

	input := []float64{0.3, -1.2, 2.0}
	got, err := net.Forward(input)
	require.NoError(t, err)

	// Unpack by hand and compute tanh(W1 x + b1) then W2 h + b2.
	w1, b1 := params[0:12], params[12:16]
	w2, b2 := params[16:24], params[24:26]

	h := make([]float64, 4)
	for j := 0; j < 4; j++ {
		s := b1[j]
		for k := 0; k < 3; k++ {
			s += w1[j*3+k] * input[k]
		}
		h[j] = math.Tanh(s)
	}
	want := make([]float64, 2)
	for j := 0; j < 2; j++ {
		s := b2[j]
		for k := 0; k < 4; k++ {
			s += w2[j*4+k] * h[k]
		}
		want[j] = s
	}

	require.Len(t, got, 2)
	assert.InDeltaSlice(t, want, got, 1e-12)
}

func TestNetwork_OutputLength(t *testing.T) {
	shapes := []nn.Shape{{1, 1}, {1, 2, 2, 1}, {3, 5, 4}, {2, 3, 3, 3, 6}}
	for _, shape := range shapes {
		params := make([]float64, shape.NumParams())
		net, err := nn.NewNetwork(shape, math.Tanh, true, params)
		require.NoError(t, err)

		out, err := net.Forward(make([]float64, shape.In()))
		require.NoError(t, err)
		assert.Len(t, out, shape.Out(), "shape %v", shape)
	}
}

func TestNetwork_ShapeMismatch(t *testing.T) {
	shape := nn.Shape{1, 2, 2, 1}

	for _, n := range []int{0, 12, 14} {
		_, err := nn.NewNetwork(shape, nn.Identity, false, make([]float64, n))
		assert.True(t, errors.Is(err, nn.ErrShapeMismatch), "len %d: %v", n, err)
	}

	net, err := nn.NewNetwork(shape, nn.Identity, false, make([]float64, 13))
	require.NoError(t, err)

	_, err = net.Forward([]float64{1, 2})
	assert.True(t, errors.Is(err, nn.ErrShapeMismatch))
}

func TestNetwork_LayersAndParamsRoundTrip(t *testing.T) {
	net, err := nn.NewNetwork(nn.Shape{2, 2, 1}, nil, false, handPicked)
	require.NoError(t, err)

	layers := net.Layers()
	require.Len(t, layers, 2)
	assert.Equal(t, 2, layers[0].In())
	assert.Equal(t, 1, layers[1].Out())
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{1, 2, 3, 4}), layers[0].Weight))
	assert.Equal(t, []float64{0.5, -1}, layers[0].Bias.RawVector().Data)

	assert.Equal(t, handPicked, net.Params())
}

func TestNetwork_DerivedByValue(t *testing.T) {
	params := append([]float64(nil), handPicked...)
	net, err := nn.NewNetwork(nn.Shape{2, 2, 1}, nil, false, params)
	require.NoError(t, err)

	params[0] = 100

	out, err := net.Forward([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{1.25}, out)

	// Mutating a returned layer does not reach the network either.
	net.Layers()[0].Weight.Set(0, 0, 100)
	assert.Equal(t, handPicked, net.Params())
}

func TestModel_EvalBindCheck(t *testing.T) {
	m := nn.NewModel(nn.Shape{2, 2, 1}, nn.Identity, false)
	assert.Equal(t, 9, m.NumParams())

	require.NoError(t, m.Check([]float64{1, 1}, handPicked))
	assert.True(t, errors.Is(m.Check([]float64{1}, handPicked), nn.ErrShapeMismatch))
	assert.True(t, errors.Is(m.Check([]float64{1, 1}, handPicked[:8]), nn.ErrShapeMismatch))

	assert.Equal(t, []float64{1.25}, m.Eval([]float64{1, 1}, handPicked))

	eval, err := m.Bind(handPicked)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.25}, eval([]float64{1, 1}))

	_, err = m.Bind(handPicked[:3])
	assert.True(t, errors.Is(err, nn.ErrShapeMismatch))

	assert.Panics(t, func() { m.Eval([]float64{1, 1}, nil) })
}

func TestInitParams(t *testing.T) {
	shape := nn.Shape{1, 4, 4, 1}

	a, err := nn.InitParams(shape, rand.New(rand.NewSource(0)))
	require.NoError(t, err)
	b, err := nn.InitParams(shape, rand.New(rand.NewSource(0)))
	require.NoError(t, err)

	require.Len(t, a, shape.NumParams())
	assert.Equal(t, a, b, "same seed must give the same vector")

	net, err := nn.NewNetwork(shape, nil, false, a)
	require.NoError(t, err)
	for i, l := range net.Layers() {
		bound := math.Sqrt(6.0 / float64(l.In()+l.Out()))
		assert.LessOrEqual(t, mat.Max(l.Weight), bound, "layer %d", i)
		assert.GreaterOrEqual(t, mat.Min(l.Weight), -bound, "layer %d", i)
		assert.Zero(t, mat.Norm(l.Bias, 2), "layer %d biases", i)
	}

	_, err = nn.InitParams(nn.Shape{1}, rand.New(rand.NewSource(0)))
	assert.True(t, errors.Is(err, nn.ErrShapeMismatch))
}
