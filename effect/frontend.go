// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package effect

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/cockroachdb/errors"
)

// DefaultFrontend is the effect front-end binary looked up in PATH.
const DefaultFrontend = "cgfxc"

// Frontend compiles effects by running an external effect front-end.
//
// The front-end is invoked as
//
//	<Bin> --profile <profile> [compiler args...] [-I dir...] <path>
//
// and must print the compiled effect as an effect dump on stdout.
type Frontend struct {
	Bin         string
	IncludeDirs []string
}

// NewFrontend returns a Frontend running DefaultFrontend.
func NewFrontend() *Frontend { return &Frontend{Bin: DefaultFrontend} }

// Load implements Loader.
func (f *Frontend) Load(ctx context.Context, path string, profile Profile) (*Effect, error) {
	cmd := exec.CommandContext(ctx, f.Bin, "--profile", profile.String())
	cmd.Args = append(cmd.Args, profile.CompilerArgs()...)
	for _, dir := range f.IncludeDirs {
		cmd.Args = append(cmd.Args, "-I"+dir)
	}
	cmd.Args = append(cmd.Args, path)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, errors.Wrapf(err, "%s\nfailed to run %v", stderr.String(), cmd.Args)
	}

	e, err := Decode(bytes.NewReader(out))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid front-end output for %s", path)
	}
	return e, nil
}
