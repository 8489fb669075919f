package optim

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
)

// Result is the outcome of one optimization run.
type Result struct {
	Params []float64       // Parameters after the last completed iteration
	Losses []float64       // Loss at the start of every completed iteration
	Times  []time.Duration // Elapsed time since run start at the end of every iteration
}

// Iterations returns the number of completed iterations.
func (r *Result) Iterations() int {
	return len(r.Losses)
}

// Final returns the last recorded loss, or 0 for an empty trace.
func (r *Result) Final() float64 {
	if len(r.Losses) == 0 {
		return 0
	}
	return r.Losses[len(r.Losses)-1]
}

// Run fits problem starting from initial using rule.
//
// Each iteration, in order:
//  1. evaluates loss0 at the current parameters and appends it to Losses
//  2. estimates the gradient (cfg.Gradient)
//  3. applies the rule's update
//  4. notifies observers (elapsed time, logging, cfg.Observer)
//
// All validation happens before the first iteration. initial is never
// modified. Diverging runs are not corrected: NaN and Inf surface in the
// returned trace and parameters.
//
// ctx is checked between iterations; when it is done, Run returns the
// partial result together with ctx.Err().
func Run[X any](ctx context.Context, problem Problem[X], initial []float64, rule Rule, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, errors.Wrap(ErrInvalidHyperparameter, "rule is nil")
	}
	if err := rule.Validate(); err != nil {
		return nil, errors.WithMessage(err, rule.Name())
	}
	if err := problem.validate(initial); err != nil {
		return nil, err
	}

	params := make([]float64, len(initial))
	copy(params, initial)

	res := &Result{
		Params: params,
		Losses: make([]float64, 0, cfg.Iterations),
		Times:  make([]time.Duration, 0, cfg.Iterations),
	}

	log := cfg.logger().With(slog.String("rule", rule.Name()))
	watch := newStopwatch(cfg.clock(), res)
	observers := []Observer{watch.observe, logEvery(log, cfg.LogEvery)}
	if cfg.Observer != nil {
		observers = append(observers, cfg.Observer)
	}

	log.Debug("run started",
		slog.Int("params", len(params)),
		slog.Int("samples", problem.Data.Len()),
		slog.Int("iterations", cfg.Iterations),
		slog.Float64("lr", cfg.LR),
		slog.String("gradient", cfg.Gradient.String()))

	state := rule.NewState(len(params))
	lossFn := problem.lossFunc()

	for iter := 1; iter <= cfg.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			log.Info("run cancelled", slog.Int("completed", res.Iterations()), slog.Any("err", err))
			return res, err
		}

		loss0 := lossFn(problem.Data, problem.Model, params)
		res.Losses = append(res.Losses, loss0)

		grad := estimate(problem, params, loss0, cfg)
		state.Step(params, grad, cfg.LR)

		for _, observe := range observers {
			observe(iter, loss0)
		}
	}

	log.Info("run finished",
		slog.Int("iterations", res.Iterations()),
		slog.Float64("loss", res.Final()),
		slog.Duration("elapsed", watch.elapsed()))

	return res, nil
}

// stopwatch records the time trace. It is kept out of the numerical loop
// and only sees iteration boundaries.
type stopwatch struct {
	now   func() time.Time
	start time.Time
	res   *Result
}

func newStopwatch(now func() time.Time, res *Result) *stopwatch {
	return &stopwatch{now: now, start: now(), res: res}
}

func (w *stopwatch) elapsed() time.Duration {
	return w.now().Sub(w.start)
}

func (w *stopwatch) observe(int, float64) {
	w.res.Times = append(w.res.Times, w.elapsed())
}

// logEvery returns an observer logging the loss every n iterations.
func logEvery(log *slog.Logger, n int) Observer {
	return func(iter int, loss float64) {
		if n > 0 && iter%n == 0 {
			log.Info("iteration", slog.Int("iter", iter), slog.Float64("loss", loss))
		}
	}
}
