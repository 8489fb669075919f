package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/descent/checkpoint"
	"github.com/born-ml/descent/optim"
)

// polynomial evaluates c[0] + c[1]·x + ... + c[n]·xⁿ.
func polynomial(x float64, c []float64) float64 {
	var y float64
	for i := len(c) - 1; i >= 0; i-- {
		y = y*x + c[i]
	}
	return y
}

func fit(ctx context.Context, args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("fit", flag.ContinueOnError)
	fs.SetOutput(stdout)

	cfgPath := fs.String("config", "", "Path to YAML run config (defaults when empty)")
	dataPath := fs.String("data", "", "CSV file of x,y samples")
	degree := fs.Int("degree", 2, "Polynomial degree")
	out := fs.String("out", "", "Write the fitted parameters to this .born file")
	optimizer := fs.String("optimizer", "", "Override optimizer ("+strings.Join(optim.RuleNames(), ", ")+")")
	lr := fs.Float64("lr", 0, "Override step size")
	iterations := fs.Int("iterations", 0, "Override number of iterations")
	workers := fs.Int("workers", 0, "Override gradient workers")
	logEvery := fs.Int("log-every", 0, "Log every N iterations")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dataPath == "" {
		return errors.New("fit: -data is required")
	}
	if *degree < 0 {
		return errors.Errorf("fit: degree must be >= 0 (got %d)", *degree)
	}

	file, err := loadRunFile(*cfgPath)
	if err != nil {
		return err
	}
	file.ApplyOverrides(optim.Overrides{
		Optimizer:  *optimizer,
		LR:         *lr,
		Iterations: *iterations,
		Workers:    *workers,
		LogEvery:   *logEvery,
	})
	if err := file.Validate(); err != nil {
		return errors.WithMessage(err, "invalid config")
	}

	rule, err := file.Rule()
	if err != nil {
		return err
	}
	cfg, err := file.RunConfig(logger)
	if err != nil {
		return err
	}

	data, err := readPoints(*dataPath)
	if err != nil {
		return err
	}
	logger.Info("samples loaded", slog.String("path", *dataPath), slog.Int("n", data.Len()))

	problem := optim.Problem[float64]{Data: data, Model: optim.ScalarFunc[float64](polynomial)}
	res, err := optim.Run(ctx, problem, make([]float64, *degree+1), rule, cfg)
	if err != nil && res == nil {
		return err
	}
	if err != nil {
		logger.Warn("run interrupted, keeping partial result", slog.Int("iterations", res.Iterations()))
	}

	fmt.Fprintf(stdout, "rule: %s\n", rule.Name())
	fmt.Fprintf(stdout, "iterations: %d\n", res.Iterations())
	fmt.Fprintf(stdout, "loss: %g\n", res.Final())
	fmt.Fprintf(stdout, "coefficients: %v\n", res.Params)

	if *out != "" {
		ck, cerr := checkpoint.FromResult(res, rule)
		if cerr != nil {
			return cerr
		}
		ck.Metadata = map[string]string{"model": "polynomial", "data": *dataPath}
		if cerr := checkpoint.Save(*out, ck); cerr != nil {
			return cerr
		}
		logger.Info("checkpoint written", slog.String("path", *out))
	}
	return err
}

// loadRunFile reads path, or returns the defaults when path is empty.
func loadRunFile(path string) (*optim.FileConfig, error) {
	if path == "" {
		return optim.ParseConfig(strings.NewReader(""))
	}
	return optim.LoadConfig(path)
}
