package nn

import (
	"math"
	"math/rand"
)

// InitParams draws a parameter vector for shape from rng.
//
// Weights use Xavier/Glorot uniform initialization,
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))), and biases
// start at zero. The generator is owned by the caller; passing a
// rand.New(rand.NewSource(seed)) makes the vector reproducible without any
// process-wide seeding.
//
// Returns ErrShapeMismatch if the shape is invalid.
func InitParams(shape Shape, rng *rand.Rand) ([]float64, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	params := make([]float64, 0, shape.NumParams())
	for i := 1; i < len(shape); i++ {
		fanIn, fanOut := shape[i-1], shape[i]
		bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

		for k := 0; k < fanIn*fanOut; k++ {
			params = append(params, (rng.Float64()*2.0-1.0)*bound)
		}
		for k := 0; k < fanOut; k++ {
			params = append(params, 0)
		}
	}

	return params, nil
}
