package optim

import "github.com/pkg/errors"

// Model is a parametric function fitted by the optimizers.
//
// Eval must be pure: the gradient estimate calls it repeatedly with
// different parameter vectors, possibly from several goroutines, and must
// not retain or modify params.
type Model[X any] interface {
	Eval(x X, params []float64) []float64
}

// ModelFunc adapts an ordinary function to the Model interface.
type ModelFunc[X any] func(x X, params []float64) []float64

// Eval calls f(x, params).
func (f ModelFunc[X]) Eval(x X, params []float64) []float64 {
	return f(x, params)
}

// ScalarFunc adapts a scalar-valued function, such as a polynomial in x, to
// the Model interface. Its output is compared against one-element targets.
type ScalarFunc[X any] func(x X, params []float64) float64

// Eval returns the one-element output of f(x, params).
func (f ScalarFunc[X]) Eval(x X, params []float64) []float64 {
	return []float64{f(x, params)}
}

// Checker is implemented by models that can validate an input and a
// parameter vector before a run starts.
type Checker[X any] interface {
	Check(x X, params []float64) error
}

// Sized is implemented by models that expect a fixed parameter count.
type Sized interface {
	NumParams() int
}

// Binder is implemented by models that can prepare a parameter vector once
// and reuse it for every sample of a loss evaluation.
type Binder[X any] interface {
	Bind(params []float64) (func(x X) []float64, error)
}

// Dataset pairs inputs with reference outputs. It is read-only during a run.
type Dataset[X any] struct {
	X []X
	Y [][]float64
}

// NewDataset creates a dataset and validates it.
func NewDataset[X any](xs []X, ys [][]float64) (Dataset[X], error) {
	ds := Dataset[X]{X: xs, Y: ys}
	return ds, ds.Validate()
}

// ScalarDataset creates a dataset whose targets are single numbers.
func ScalarDataset[X any](xs []X, ys []float64) (Dataset[X], error) {
	wrapped := make([][]float64, len(ys))
	for i, y := range ys {
		wrapped[i] = []float64{y}
	}
	return NewDataset(xs, wrapped)
}

// Len returns the number of samples.
func (d Dataset[X]) Len() int {
	return len(d.X)
}

// Validate reports ErrEmptyDataset when there are no samples and
// ErrDimensionMismatch when X and Y differ in length.
func (d Dataset[X]) Validate() error {
	if len(d.X) == 0 && len(d.Y) == 0 {
		return errors.WithStack(ErrEmptyDataset)
	}
	if len(d.X) != len(d.Y) {
		return errors.Wrapf(ErrDimensionMismatch, "%d inputs but %d targets", len(d.X), len(d.Y))
	}
	return nil
}

// Problem is what every optimizer variant consumes: data, a model and a
// loss. A nil Loss selects MSE.
type Problem[X any] struct {
	Data  Dataset[X]
	Model Model[X]
	Loss  LossFunc[X]
}

// lossFunc returns the configured loss or MSE.
func (p Problem[X]) lossFunc() LossFunc[X] {
	if p.Loss != nil {
		return p.Loss
	}
	return MSE[X]
}

// validate checks everything that can be checked before the first
// iteration, so that no error can surface mid-run.
func (p Problem[X]) validate(params []float64) error {
	if err := p.Data.Validate(); err != nil {
		return err
	}
	if p.Model == nil {
		return errors.New("model is nil")
	}
	if sized, ok := p.Model.(Sized); ok {
		if want := sized.NumParams(); want != len(params) {
			return errors.Wrapf(ErrDimensionMismatch, "model expects %d parameters, got %d", want, len(params))
		}
	}
	if checker, ok := p.Model.(Checker[X]); ok {
		for i, x := range p.Data.X {
			if err := checker.Check(x, params); err != nil {
				return errors.Wrapf(err, "sample %d", i)
			}
		}
	}

	// A custom loss decides for itself how outputs relate to targets.
	if p.Loss != nil {
		return nil
	}

	eval, err := bind(p.Model, params)
	if err != nil {
		return err
	}
	for i, x := range p.Data.X {
		if got, want := len(eval(x)), len(p.Data.Y[i]); got != want {
			return errors.Wrapf(ErrDimensionMismatch, "sample %d: model returned %d values for a target of %d", i, got, want)
		}
	}
	return nil
}

// bind returns a per-sample evaluator for params.
func bind[X any](m Model[X], params []float64) (func(x X) []float64, error) {
	if b, ok := m.(Binder[X]); ok {
		return b.Bind(params)
	}
	return func(x X) []float64 {
		return m.Eval(x, params)
	}, nil
}
