package nn

import "github.com/pkg/errors"

// ErrShapeMismatch reports a parameter vector or input whose length does not
// agree with the network shape.
var ErrShapeMismatch = errors.New("shape mismatch")
