package optim

import "github.com/pkg/errors"

// Errors returned at run start. They are matched with errors.Is; the
// returned error wraps them with the offending values.
var (
	ErrEmptyDataset          = errors.New("empty dataset")
	ErrDimensionMismatch     = errors.New("dimension mismatch")
	ErrInvalidHyperparameter = errors.New("invalid hyperparameter")
)
