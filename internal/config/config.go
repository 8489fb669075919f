// Package config loads optimizer run settings from YAML.
//
// A run file names the update rule and its hyperparameters together with
// the settings shared by every rule:
//
//	optimizer: adam
//	lr: 0.05
//	iterations: 500
//	beta1: 0.9
//	workers: 4
//	log_every: 50
//
// Keys that are omitted keep the optim defaults. Unknown keys are rejected.
package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/descent/internal/optim"
	"github.com/born-ml/descent/internal/parallel"
)

// Config captures the runtime knobs of one optimization run.
type Config struct {
	Optimizer   string   `yaml:"optimizer"`
	LR          float64  `yaml:"lr"`
	Dx          float64  `yaml:"dx"`
	Iterations  int      `yaml:"iterations"`
	Gradient    string   `yaml:"gradient"`
	Beta        *float64 `yaml:"beta,omitempty"`
	Beta1       *float64 `yaml:"beta1,omitempty"`
	Beta2       *float64 `yaml:"beta2,omitempty"`
	Eps         *float64 `yaml:"eps,omitempty"`
	UseVelocity bool     `yaml:"use_velocity,omitempty"`
	Workers     int      `yaml:"workers"`
	LogEvery    int      `yaml:"log_every"`
}

// Overrides captures CLI supplied values. Zero fields are ignored.
type Overrides struct {
	Optimizer  string
	LR         float64
	Iterations int
	Workers    int
	LogEvery   int
}

// Default returns the settings used for omitted keys.
func Default() *Config {
	run := optim.DefaultConfig()
	return &Config{
		Optimizer:  "adam",
		LR:         run.LR,
		Dx:         run.Dx,
		Iterations: run.Iterations,
		Gradient:   run.Gradient.String(),
	}
}

// Load reads and validates a Config from a YAML file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, errors.WithMessagef(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML from r on top of Default and validates the result.
// An empty document yields the defaults.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides updates c using any non-zero override. Call Validate
// afterwards.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Optimizer != "" {
		c.Optimizer = o.Optimizer
	}
	if o.LR != 0 {
		c.LR = o.LR
	}
	if o.Iterations > 0 {
		c.Iterations = o.Iterations
	}
	if o.Workers > 0 {
		c.Workers = o.Workers
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
}

// Validate verifies the config is runnable: the rule exists and accepts its
// hyperparameters, and the shared settings pass optim validation.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Workers < 0 {
		return errors.Wrapf(optim.ErrInvalidHyperparameter, "workers must be >= 0 (got %d)", c.Workers)
	}
	if _, err := c.Rule(); err != nil {
		return err
	}
	run, err := c.RunConfig(nil)
	if err != nil {
		return err
	}
	return run.Validate()
}

// Rule builds the configured update rule.
func (c *Config) Rule() (optim.Rule, error) {
	return optim.NewRule(c.Optimizer, optim.Hyperparameters{
		Beta:        c.Beta,
		Beta1:       c.Beta1,
		Beta2:       c.Beta2,
		Eps:         c.Eps,
		UseVelocity: c.UseVelocity,
	})
}

// RunConfig converts the shared settings to an optim.Config logging to
// logger. Workers of 0 or 1 run the gradient sequentially.
func (c *Config) RunConfig(logger *slog.Logger) (optim.Config, error) {
	mode, err := optim.ParseGradientMode(c.Gradient)
	if err != nil {
		return optim.Config{}, err
	}

	run := optim.DefaultConfig()
	run.LR = c.LR
	run.Dx = c.Dx
	run.Iterations = c.Iterations
	run.Gradient = mode
	run.LogEvery = c.LogEvery
	run.Logger = logger
	if c.Workers > 1 {
		run.Workers = parallel.DefaultConfig()
		run.Workers.Enabled = true
		run.Workers.NumWorkers = c.Workers
	}
	return run, nil
}

// Marshal encodes c as YAML with the optimizer name normalized.
func (c *Config) Marshal() ([]byte, error) {
	out := *c
	out.Optimizer = strings.ToLower(strings.TrimSpace(out.Optimizer))

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&out); err != nil {
		return nil, errors.Wrap(err, "encode config")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encode config")
	}
	return buf.Bytes(), nil
}
