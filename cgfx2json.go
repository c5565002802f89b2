// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package cgfx2json converts CgFX effects into JSON manifests for a WebGL
// runtime.
//
// An effect is compiled by an external front-end for a target profile and
// then written out as one manifest holding its samplers, parameters,
// techniques and the rewritten code of every program:
//
//	opts := cgfx2json.DefaultOptions()
//	opts.Input = "lambert.cgfx"
//	opts.Output = "lambert.json"
//	c := cgfx2json.NewConverter(opts)
//	if err := c.Convert(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	c.Diagnostics().Print(os.Stderr)
//
// Conversion makes two passes over the effect. The first walks techniques
// and learns the compiled names of the uniforms every pass uses; the
// second rewrites each program with the finished rename table.
package cgfx2json

import (
	"github.com/gogpu/cgfx2json/binary"
	"github.com/gogpu/cgfx2json/effect"
	"github.com/gogpu/cgfx2json/rewrite"
)

// Version is the tool version reported by the CLI.
const Version = "0.23"

// Options configures a conversion.
type Options struct {
	// Input is the effect file. Its base name becomes the manifest name.
	Input string

	// Output is the manifest file written by Convert.
	Output string

	// Indent is the number of spaces per nesting level. Zero writes
	// compact JSON.
	Indent int

	// Profile is the primary target: ProfileGLSL, ProfileGLSLES or
	// ProfileASM.
	Profile effect.Profile

	// Loader compiles the input. Nil uses the default front-end.
	Loader effect.Loader

	// Targets are compile scripts run over every program. Their output is
	// stored under the target property.
	Targets []binary.Target

	// Compiler runs the Targets scripts. Nil runs processes and, when a
	// script is a .wasm module, an embedded WASI runtime.
	Compiler *binary.Compiler
}

// DefaultOptions returns options for compact portable GLSL output.
func DefaultOptions() Options {
	return Options{
		Profile: effect.ProfileGLSL,
	}
}

// Language returns the language programs are written in for o.Profile.
func (o *Options) Language() rewrite.Language {
	return rewrite.LanguageFor(o.Profile)
}
