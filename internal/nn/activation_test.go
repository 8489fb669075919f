package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity(t *testing.T) {
	for _, v := range []float64{-3.5, 0, 1e300, math.Inf(-1)} {
		assert.Equal(t, v, Identity(v))
	}
}

func TestActivationApply(t *testing.T) {
	z := []float64{-1, 0, 2}
	Activation(math.Abs).apply(z)
	assert.Equal(t, []float64{1, 0, 2}, z)
}
