// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package binary

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// Compiler picks the runner for each target.
type Compiler struct {
	Process Runner
	WASM    Runner

	// Logger receives one debug record per compiled program. Nil disables
	// logging.
	Logger *slog.Logger
}

// Compile runs the script of t over job and returns the manifest string
// for the artifact.
func (c *Compiler) Compile(ctx context.Context, t Target, job Job) (string, error) {
	runner := c.Process
	if t.IsWASM() {
		runner = c.WASM
	}
	if runner == nil {
		return "", errors.Mark(errors.Newf("no runner for %s", t.Script), ErrScriptFailed)
	}

	out, err := runner.Run(ctx, t.Script, job)
	if err != nil {
		return "", errors.Wrapf(err, "%s for %s", t.Property, job.Entry)
	}
	if c.Logger != nil {
		c.Logger.Debug("binary", "property", t.Property, "entry", job.Entry, "bytes", len(out))
	}
	return Embed(out), nil
}
