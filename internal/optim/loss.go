package optim

// LossFunc aggregates the error of a model over a dataset into one scalar.
//
// Implementations must be pure and safe for concurrent use; the gradient
// estimate calls them once per parameter, possibly in parallel.
type LossFunc[X any] func(data Dataset[X], model Model[X], params []float64) float64

// MSE is the mean over samples of the squared residual, where the squared
// residual of a sample sums (out_j - y_j)² over its output elements:
//
//	loss = Σ_i Σ_j (model(x_i)_j - y_ij)² / len(X)
//
// MSE assumes a validated problem (non-empty data, matching widths) and
// reduces sequentially, so equal inputs give bit-identical results. Use Loss
// for a checked call.
func MSE[X any](data Dataset[X], model Model[X], params []float64) float64 {
	eval, err := bind(model, params)
	if err != nil {
		panic(err)
	}

	var sum float64
	for i, x := range data.X {
		out := eval(x)
		var se float64
		for j, y := range data.Y[i] {
			d := out[j] - y
			se += d * d
		}
		sum += se
	}
	return sum / float64(len(data.X))
}

// Loss validates the problem against params and evaluates its loss.
//
// Returns ErrEmptyDataset for a dataset without samples and
// ErrDimensionMismatch when lengths disagree.
func Loss[X any](p Problem[X], params []float64) (float64, error) {
	if err := p.validate(params); err != nil {
		return 0, err
	}
	return p.lossFunc()(p.Data, p.Model, params), nil
}
