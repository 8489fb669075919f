package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/descent/internal/optim"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	rule, err := cfg.Rule()
	require.NoError(t, err)
	assert.Equal(t, optim.DefaultAdam(), rule)

	run, err := cfg.RunConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, optim.DefaultConfig(), run)
}

func TestParse_AllKeys(t *testing.T) {
	const doc = `
optimizer: Momentum
lr: 0.5
dx: 1.0e-6
iterations: 20
gradient: central
beta: 0.8
use_velocity: true
workers: 3
log_every: 5
`
	cfg, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	rule, err := cfg.Rule()
	require.NoError(t, err)
	assert.Equal(t, optim.MomentumConfig{Beta: 0.8, UseVelocity: true}, rule)

	run, err := cfg.RunConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, run.LR)
	assert.Equal(t, 1e-6, run.Dx)
	assert.Equal(t, 20, run.Iterations)
	assert.Equal(t, optim.Central, run.Gradient)
	assert.Equal(t, 5, run.LogEvery)
	assert.True(t, run.Workers.Enabled)
	assert.Equal(t, 3, run.Workers.NumWorkers)
}

func TestParse_PartialAdam(t *testing.T) {
	cfg, err := Parse(strings.NewReader("beta2: 0.999\neps: 1e-8\n"))
	require.NoError(t, err)

	rule, err := cfg.Rule()
	require.NoError(t, err)
	assert.Equal(t, optim.AdamConfig{Betas: [2]float64{0.96, 0.999}, Eps: 1e-8}, rule)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown key", "learning_rate: 0.1\n", nil},
		{"bad type", "iterations: many\n", nil},
		{"unknown optimizer", "optimizer: lbfgs\n", optim.ErrInvalidHyperparameter},
		{"unknown gradient", "gradient: backward\n", optim.ErrInvalidHyperparameter},
		{"zero iterations", "iterations: 0\n", optim.ErrInvalidHyperparameter},
		{"zero dx", "dx: 0\n", optim.ErrInvalidHyperparameter},
		{"beta out of range", "optimizer: rmsprop\nbeta: 1\n", optim.ErrInvalidHyperparameter},
		{"negative workers", "workers: -2\n", optim.ErrInvalidHyperparameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Nil(t, cfg)
			if tt.want != nil {
				assert.True(t, errors.Is(err, tt.want), "%v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("optimizer: adagrad\nlr: 0.25\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "adagrad", cfg.Optimizer)
	assert.Equal(t, 0.25, cfg.LR)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "%v", err)
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyOverrides(Overrides{Optimizer: "rmsprop", Iterations: 7, LogEvery: 2})

	assert.Equal(t, "rmsprop", cfg.Optimizer)
	assert.Equal(t, 7, cfg.Iterations)
	assert.Equal(t, 2, cfg.LogEvery)
	assert.Equal(t, 1.0, cfg.LR, "zero override keeps the value")
	assert.Equal(t, 0, cfg.Workers)
	require.NoError(t, cfg.Validate())
}

func TestMarshal_RoundTrip(t *testing.T) {
	beta1 := 0.9
	cfg := Default()
	cfg.Optimizer = " ADAM"
	cfg.Beta1 = &beta1
	cfg.Iterations = 42

	out, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), "optimizer: adam")
	assert.NotContains(t, string(out), "beta2", "unset hyperparameters are omitted")

	back, err := Parse(strings.NewReader(string(out)))
	require.NoError(t, err)
	assert.Equal(t, 42, back.Iterations)
	require.NotNil(t, back.Beta1)
	assert.Equal(t, 0.9, *back.Beta1)
}
