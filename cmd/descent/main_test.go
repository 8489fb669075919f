package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/descent/checkpoint"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestPolynomial(t *testing.T) {
	assert.Equal(t, 0.0, polynomial(3, nil))
	assert.Equal(t, 1-2*3+0.5*9, polynomial(3, []float64{1, -2, 0.5}))
}

func TestParsePoints(t *testing.T) {
	data, err := parsePoints(strings.NewReader("x,y\n# comment\n0, 1\n1,3\n2, 5\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, data.X)
	assert.Equal(t, [][]float64{{1}, {3}, {5}}, data.Y)

	_, err = parsePoints(strings.NewReader("0,1\nx,2\n"))
	assert.ErrorContains(t, err, "record 2")

	_, err = parsePoints(strings.NewReader("0,1,2\n"))
	assert.Error(t, err)

	_, err = parsePoints(strings.NewReader("x,y\n"))
	assert.Error(t, err, "no samples")
}

func TestRun_Commands(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"version"}, &out, &errOut))
	assert.Equal(t, "descent "+version+"\n", out.String())

	out.Reset()
	require.NoError(t, run(context.Background(), []string{"rules"}, &out, &errOut))
	assert.Contains(t, out.String(), "adam\n")
	assert.Contains(t, out.String(), "momentum\n")

	out.Reset()
	require.NoError(t, run(context.Background(), nil, &out, &errOut))
	assert.Contains(t, out.String(), "Commands:")

	err := run(context.Background(), []string{"train"}, &out, &errOut)
	assert.EqualError(t, err, `unknown command "train"`)
	_, traced := err.(interface{ StackTrace() errors.StackTrace })
	assert.True(t, traced, "errors carry a stack trace")
}

func TestRun_Fit(t *testing.T) {
	var csv strings.Builder
	csv.WriteString("x,y\n")
	for i := -5; i <= 5; i++ {
		x := float64(i) / 5
		csv.WriteString(ftoa(x) + "," + ftoa(1+2*x) + "\n")
	}
	dataPath := writeFile(t, "line.csv", csv.String())
	cfgPath := writeFile(t, "run.yaml", "optimizer: adam\nlr: 0.05\niterations: 300\n")
	outPath := filepath.Join(t.TempDir(), "line.born")

	var out, errOut bytes.Buffer
	err := run(context.Background(), []string{
		"fit", "-config", cfgPath, "-data", dataPath, "-degree", "1", "-out", outPath, "-log-every", "100",
	}, &out, &errOut)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "rule: adam")
	assert.Contains(t, out.String(), "iterations: 300")
	assert.Contains(t, errOut.String(), "msg=iteration")

	ck, err := checkpoint.Load(outPath)
	require.NoError(t, err)
	require.Len(t, ck.Params, 2)
	assert.InDelta(t, 1, ck.Params[0], 0.1)
	assert.InDelta(t, 2, ck.Params[1], 0.1)
	assert.Equal(t, "polynomial", ck.Metadata["model"])
}

func TestRun_FitErrors(t *testing.T) {
	dataPath := writeFile(t, "pts.csv", "0,1\n1,2\n")
	var out, errOut bytes.Buffer

	assert.ErrorContains(t, run(context.Background(), []string{"fit"}, &out, &errOut), "-data")
	assert.Error(t, run(context.Background(), []string{"fit", "-data", dataPath, "-optimizer", "lbfgs"}, &out, &errOut))
	assert.Error(t, run(context.Background(), []string{"fit", "-data", dataPath, "-degree", "-1"}, &out, &errOut))
	assert.Error(t, run(context.Background(), []string{"fit", "-data", filepath.Join(t.TempDir(), "none.csv")}, &out, &errOut))
}

func TestRun_FitCancelled(t *testing.T) {
	dataPath := writeFile(t, "pts.csv", "0,1\n1,2\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errOut bytes.Buffer
	err := run(ctx, []string{"fit", "-data", dataPath}, &out, &errOut)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, out.String(), "iterations: 0")
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
