// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cgfx2json

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/gogpu/cgfx2json/binary"
	"github.com/gogpu/cgfx2json/deps"
	"github.com/gogpu/cgfx2json/diag"
	"github.com/gogpu/cgfx2json/effect"
	"github.com/gogpu/cgfx2json/manifest"
	"github.com/gogpu/cgfx2json/param"
	"github.com/gogpu/cgfx2json/rewrite"
	"github.com/gogpu/cgfx2json/technique"
	"github.com/gogpu/cgfx2json/uniform"
)

// ErrNoOutput is returned by Convert when Options.Output is empty.
var ErrNoOutput = errors.New("no output file")

// Converter runs one conversion. It is not safe for concurrent use.
type Converter struct {
	opts   Options
	diags  diag.List
	logger *slog.Logger

	rewriter rewrite.Rewriter
	effects  map[effect.Profile]*effect.Effect

	// tables holds the rename tables of effects loaded for binary targets.
	tables map[rewrite.Language]*uniform.Table
}

// Stats counts what a conversion wrote.
type Stats struct {
	Samplers   int
	Parameters int
	Techniques int
	Programs   int
}

// NewConverter returns a Converter for opts.
func NewConverter(opts Options) *Converter {
	if opts.Loader == nil {
		opts.Loader = effect.NewFrontend()
	}
	logger := Logger()
	return &Converter{
		opts:     opts,
		logger:   logger,
		rewriter: rewrite.Rewriter{Logger: logger},
		effects:  make(map[effect.Profile]*effect.Effect),
		tables:   make(map[rewrite.Language]*uniform.Table),
	}
}

// Diagnostics returns the problems recorded so far. Recorded errors do not
// stop a conversion but should fail the build.
func (c *Converter) Diagnostics() *diag.List {
	return &c.diags
}

// Convert writes the manifest to Options.Output. Nothing is written when a
// fatal error occurs.
func (c *Converter) Convert(ctx context.Context) error {
	if c.opts.Output == "" {
		return ErrNoOutput
	}
	c.logger.Debug("convert", "input", c.opts.Input, "output", c.opts.Output,
		"language", c.opts.Language().String(), "indent", c.opts.Indent)

	var buf bytes.Buffer
	if _, err := c.Encode(ctx, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(c.opts.Output, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "could not write to output file '%s'", c.opts.Output)
	}
	return nil
}

// Dependencies returns the files the input includes, without duplicates.
func (c *Converter) Dependencies(ctx context.Context) ([]string, error) {
	e, err := c.load(ctx, c.opts.Profile)
	if err != nil {
		return nil, err
	}
	return deps.List(e.Includes), nil
}

func (c *Converter) load(ctx context.Context, profile effect.Profile) (*effect.Effect, error) {
	if e, ok := c.effects[profile]; ok {
		return e, nil
	}
	e, err := c.opts.Loader.Load(ctx, c.opts.Input, profile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cgfx file")
	}
	c.effects[profile] = e
	return e, nil
}

// Encode writes the manifest to w.
func (c *Converter) Encode(ctx context.Context, out io.Writer) (Stats, error) {
	var stats Stats

	e, err := c.load(ctx, c.opts.Profile)
	if err != nil {
		return stats, err
	}

	w := manifest.NewWriter(out, c.opts.Indent)
	w.String("version", "1")
	w.String("name", filepath.Base(c.opts.Input))

	stats.Samplers = c.writeSamplers(w, e)
	stats.Parameters = c.writeParameters(w, e)

	table := uniform.NewTable()
	asm := &technique.Assembler{
		Mapper:      uniform.NewMapper(table),
		Diagnostics: &c.diags,
		Logger:      c.logger,
	}
	if err := asm.Assemble(w, e); err != nil {
		return stats, err
	}
	stats.Techniques = len(e.Techniques)

	stats.Programs, err = c.writePrograms(ctx, w, e, table)
	if err != nil {
		return stats, err
	}

	if err := w.Close(); err != nil {
		return stats, err
	}
	c.logger.Info("converted", "samplers", stats.Samplers, "parameters", stats.Parameters,
		"techniques", stats.Techniques, "programs", stats.Programs)
	return stats, nil
}

func (c *Converter) writeSamplers(w *manifest.Writer, e *effect.Effect) int {
	n := 0
	for _, p := range e.Parameters {
		if len(p.SamplerStates) == 0 {
			continue
		}
		if n == 0 {
			w.BeginObject("samplers")
		}
		c.logger.Debug("sampler", "name", p.Name, "states", len(p.SamplerStates))
		if err := param.WriteSampler(w, p); err != nil {
			c.diags.Warnf("%v", err)
		}
		n++
	}
	if n > 0 {
		w.EndObject()
	}
	return n
}

func (c *Converter) writeParameters(w *manifest.Writer, e *effect.Effect) int {
	w.BeginObject("parameters")
	for _, p := range e.Parameters {
		c.logger.Debug("parameter", "name", p.Name, "type", p.BaseType)
		param.Write(w, p)
	}
	w.EndObject()
	return len(e.Parameters)
}

func (c *Converter) writePrograms(ctx context.Context, w *manifest.Writer, e *effect.Effect, table *uniform.Table) (int, error) {
	compiler, done := c.compiler(ctx)
	defer done()

	lang := c.opts.Language()
	programs := e.UniquePrograms()

	w.BeginObject("programs")
	for _, p := range programs {
		c.logger.Debug("program", "entry", p.EntryPoint, "type", p.Domain.String())

		code := c.rewriter.Rewrite(rewrite.Program{
			Source:     p.Source,
			Stage:      p.Domain,
			EntryPoint: p.EntryPoint,
		}, lang, table)

		w.BeginObject(p.EntryPoint)
		w.String("type", p.Domain.String())
		w.String("code", code)
		for _, t := range c.opts.Targets {
			job, err := c.binaryJob(ctx, t, p, code)
			if err != nil {
				return 0, err
			}
			artifact, err := compiler.Compile(ctx, t, job)
			if err != nil {
				return 0, err
			}
			w.String(t.Property, artifact)
		}
		w.EndObject()
	}
	w.EndObject()
	return len(programs), w.Err()
}

// compiler returns the binary compiler and a function releasing it.
func (c *Converter) compiler(ctx context.Context) (*binary.Compiler, func()) {
	if c.opts.Compiler != nil || len(c.opts.Targets) == 0 {
		return c.opts.Compiler, func() {}
	}
	bc := &binary.Compiler{Process: binary.ProcessRunner{}, Logger: c.logger}
	for _, t := range c.opts.Targets {
		if t.IsWASM() {
			wr := binary.NewWASMRunner(ctx)
			bc.WASM = wr
			return bc, func() {
				if err := wr.Close(ctx); err != nil {
					c.logger.Warn("close wasm runtime", "error", err)
				}
			}
		}
	}
	return bc, func() {}
}

// binaryJob builds the input of target t for program p. Targets in the
// primary language compile code; others compile the program from the
// effect loaded for their own language.
func (c *Converter) binaryJob(ctx context.Context, t binary.Target, p *effect.Program, code string) (binary.Job, error) {
	job := binary.Job{Code: code, Type: p.Domain.String(), Entry: p.EntryPoint}
	if t.Language == c.opts.Language() {
		return job, nil
	}

	e, table, err := c.targetEffect(ctx, t.Language)
	if err != nil {
		return job, err
	}
	tp := e.ProgramByEntryPoint(p.EntryPoint)
	if tp == nil {
		return job, errors.Newf("%s: program %s missing from %s compile", t.Property, p.EntryPoint, t.Language)
	}
	job.Code = c.rewriter.Rewrite(rewrite.Program{
		Source:     tp.Source,
		Stage:      tp.Domain,
		EntryPoint: tp.EntryPoint,
	}, t.Language, table)

	if rs := t.Language.Rules(); rs.Target == rewrite.TargetHLSL {
		if job.Profile, err = rs.ShaderModel.Profile(tp.Domain); err != nil {
			return job, errors.Wrapf(err, "%s: %s", t.Property, p.EntryPoint)
		}
	}
	return job, nil
}

// targetEffect loads the effect for lang and maps its uniforms into a
// table of its own.
func (c *Converter) targetEffect(ctx context.Context, lang rewrite.Language) (*effect.Effect, *uniform.Table, error) {
	e, err := c.load(ctx, lang.Profile())
	if err != nil {
		return nil, nil, err
	}
	if table, ok := c.tables[lang]; ok {
		return e, table, nil
	}
	table := uniform.NewTable()
	if err := technique.Collect(e, uniform.NewMapper(table)); err != nil {
		return nil, nil, errors.Wrapf(err, "%s uniforms", lang)
	}
	c.tables[lang] = table
	return e, table, nil
}
