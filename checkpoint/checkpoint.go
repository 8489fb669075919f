// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package checkpoint saves and loads fitted parameter vectors.
//
// Files use the Born .born v2 container: a fixed header with a SHA-256 of
// the data, a JSON header describing the model and the run, and the
// parameters as little-endian float64 values in packing order.
//
// Example:
//
//	res, err := optim.RunAdam(ctx, problem, initial, cfg, rule)
//	ck, err := checkpoint.FromResult(res, rule)
//	ck.Shape = shape
//	err = checkpoint.Save("fit.born", ck)
//
//	ck, err = checkpoint.Load("fit.born")
//	net, err := nn.NewNetwork(ck.Shape, math.Tanh, false, ck.Params)
package checkpoint

import (
	"io"

	"github.com/born-ml/descent/internal/optim"
	"github.com/born-ml/descent/internal/serialization"
)

// Errors reported while loading.
var (
	ErrChecksumMismatch   = serialization.ErrChecksumMismatch
	ErrInvalidMagic       = serialization.ErrInvalidMagic
	ErrUnsupportedVersion = serialization.ErrUnsupportedVersion
	ErrHeaderTooLarge     = serialization.ErrHeaderTooLarge
)

// Checkpoint is a parameter vector together with the run that produced it.
type Checkpoint = serialization.Checkpoint

// FromResult captures the parameters, iteration count and final loss of a
// run made with rule. rule may be nil for a plain parameter file.
func FromResult(res *optim.Result, rule optim.Rule) (*Checkpoint, error) {
	return serialization.NewCheckpoint(res, rule)
}

// Save writes ck to path.
func Save(path string, ck *Checkpoint) error {
	return serialization.WriteFile(path, ck)
}

// Load reads a checkpoint from path and verifies its checksum.
func Load(path string) (*Checkpoint, error) {
	return serialization.ReadFile(path)
}

// Write encodes ck to w.
func Write(w io.Writer, ck *Checkpoint) error {
	return serialization.Write(w, ck)
}

// Read decodes a checkpoint from r and verifies its checksum.
func Read(r io.Reader) (*Checkpoint, error) {
	return serialization.Read(r)
}
