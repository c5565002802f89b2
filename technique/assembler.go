// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package technique assembles the techniques block of the manifest and
// records the uniform names the compiler assigned along the way.
package technique

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/gogpu/cgfx2json/diag"
	"github.com/gogpu/cgfx2json/effect"
	"github.com/gogpu/cgfx2json/manifest"
	"github.com/gogpu/cgfx2json/param"
	"github.com/gogpu/cgfx2json/uniform"
)

// Assembler walks techniques, passes and programs. Problems that leave the
// manifest usable are recorded in Diagnostics; a uniform conflict stops
// the walk and is returned.
type Assembler struct {
	Mapper      *uniform.Mapper
	Diagnostics *diag.List

	// Logger receives one debug record per technique. Nil disables
	// logging.
	Logger *slog.Logger
}

// Assemble emits the "techniques" object of e.
func (a *Assembler) Assemble(w *manifest.Writer, e *effect.Effect) error {
	if a.Diagnostics == nil {
		a.Diagnostics = new(diag.List)
	}
	w.BeginObject("techniques")
	for _, t := range e.Techniques {
		if err := a.technique(w, t); err != nil {
			return err
		}
	}
	w.EndObject()
	return w.Err()
}

// Collect runs the uniform mapping of every pass of e without emitting
// anything. It builds the rename table of an effect whose techniques are
// not written, such as the HLSL compile of binary targets.
func Collect(e *effect.Effect, m *uniform.Mapper) error {
	for _, t := range e.Techniques {
		for _, p := range t.Passes {
			if _, err := passParameters(m, p); err != nil {
				return errors.Wrapf(err, "technique %s", t.Name)
			}
		}
	}
	return nil
}

func (a *Assembler) technique(w *manifest.Writer, t *effect.Technique) error {
	if a.Logger != nil {
		a.Logger.Debug("technique", "name", t.Name, "passes", len(t.Passes))
	}

	w.BeginArray(t.Name)
	if len(t.Passes) == 0 {
		a.Diagnostics.Errorf("%s : Technique has no passes.", t.Name)
	}
	for _, p := range t.Passes {
		if err := a.pass(w, t, p); err != nil {
			return errors.Wrapf(err, "technique %s", t.Name)
		}
	}
	w.EndArray()
	return nil
}

func (a *Assembler) pass(w *manifest.Writer, t *effect.Technique, p *effect.Pass) error {
	w.BeginObject("")
	if p.Name != "" {
		w.String("name", p.Name)
	}

	names, err := passParameters(a.Mapper, p)
	if err != nil {
		return err
	}
	if len(names) > 0 {
		w.BeginList("parameters")
		for _, n := range names {
			w.String("", n)
		}
		w.EndArray()
	}

	w.BeginList("semantics")
	if vp := p.Program(effect.Vertex); vp != nil {
		for _, in := range vp.Inputs {
			if in.Variability != effect.Varying || in.Direction == effect.Out {
				continue
			}
			attr, ok := Attribute(in.Semantic)
			if !ok {
				a.Diagnostics.Errorf("%s : Unknown semantic '%s'.", t.Name, in.Semantic)
				attr = in.Semantic
			}
			w.String("", attr)
		}
	}
	w.EndArray()

	w.BeginObject("states")
	for _, s := range p.States {
		if !IsValidState(s.Name) {
			a.Diagnostics.Errorf("Invalid state for OpenGL ES 2.0 %s", s.Name)
			continue
		}
		if err := param.WriteState(w, s); err != nil {
			a.Diagnostics.Errorf("%v", err)
		}
	}
	w.EndObject()

	w.BeginList("programs")
	for _, d := range effect.Domains {
		prog := p.Program(d)
		switch {
		case prog != nil:
			w.String("", prog.EntryPoint)
		case d == effect.Vertex:
			a.Diagnostics.Errorf("%s : No vertex program.", t.Name)
		case d == effect.Fragment:
			a.Diagnostics.Errorf("%s : No fragment program.", t.Name)
		}
	}
	w.EndArray()

	w.EndObject()
	return nil
}

// passParameters maps the used uniforms of every program of p, in domain
// order, and returns the entries to list for the pass.
func passParameters(m *uniform.Mapper, p *effect.Pass) ([]string, error) {
	var names []string
	for _, d := range effect.Domains {
		prog := p.Program(d)
		if prog == nil {
			continue
		}
		for _, pm := range prog.Parameters {
			if !pm.Used || pm.Variability != effect.Uniform {
				continue
			}
			entry, ok, err := m.Map(prog.Source, pm.Name)
			if err != nil {
				return nil, errors.Wrapf(err, "program %s", prog.EntryPoint)
			}
			if ok {
				names = append(names, entry)
			}
		}
	}
	return names, nil
}
