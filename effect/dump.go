// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package effect

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// ErrInvalidDump is returned for effect dumps that cannot be resolved
// into an Effect.
var ErrInvalidDump = errors.New("invalid effect dump")

type (
	dumpState struct {
		Name   string    `json:"name"`
		Kind   string    `json:"kind"`
		Values []float64 `json:"values"`
		String string    `json:"string"`
	}
	dumpParameter struct {
		Name          string      `json:"name"`
		Semantic      string      `json:"semantic"`
		Type          string      `json:"type"`
		Rows          int         `json:"rows"`
		Columns       int         `json:"columns"`
		ArraySize     int         `json:"array_size"`
		Variability   string      `json:"variability"`
		Direction     string      `json:"direction"`
		Values        []float64   `json:"values"`
		Used          bool        `json:"used"`
		SamplerStates []dumpState `json:"sampler_states"`
	}
	dumpProgram struct {
		Domain     string          `json:"domain"`
		Entry      string          `json:"entry"`
		Source     string          `json:"source"`
		Parameters []dumpParameter `json:"parameters"`
		Inputs     []dumpParameter `json:"inputs"`
	}
	dumpPass struct {
		Name     string            `json:"name"`
		Programs map[string]string `json:"programs"`
		States   []dumpState       `json:"states"`
	}
	dumpTechnique struct {
		Name   string     `json:"name"`
		Passes []dumpPass `json:"passes"`
	}
	dumpEffect struct {
		Parameters []dumpParameter `json:"parameters"`
		Programs   []dumpProgram   `json:"programs"`
		Techniques []dumpTechnique `json:"techniques"`
		Includes   []string        `json:"includes"`
	}
)

// Decode reads an effect dump.
func Decode(r io.Reader) (*Effect, error) {
	var d dumpEffect
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(err, "decode effect dump")
	}

	e := &Effect{Includes: d.Includes}

	for i := range d.Parameters {
		p, err := d.Parameters[i].parameter()
		if err != nil {
			return nil, err
		}
		e.Parameters = append(e.Parameters, p)
	}

	for i := range d.Programs {
		dp := &d.Programs[i]
		domain, ok := ParseDomain(dp.Domain)
		if !ok {
			return nil, errors.Mark(errors.Newf("program %q: unknown domain %q", dp.Entry, dp.Domain), ErrInvalidDump)
		}
		prog := &Program{
			Domain:     domain,
			EntryPoint: dp.Entry,
			Source:     dp.Source,
		}
		for j := range dp.Parameters {
			p, err := dp.Parameters[j].parameter()
			if err != nil {
				return nil, errors.Wrapf(err, "program %q", dp.Entry)
			}
			prog.Parameters = append(prog.Parameters, p)
		}
		for j := range dp.Inputs {
			p, err := dp.Inputs[j].parameter()
			if err != nil {
				return nil, errors.Wrapf(err, "program %q", dp.Entry)
			}
			prog.Inputs = append(prog.Inputs, p)
		}
		e.Programs = append(e.Programs, prog)
	}

	for _, dt := range d.Techniques {
		t := &Technique{Name: dt.Name}
		for _, dpass := range dt.Passes {
			pass := &Pass{Name: dpass.Name}
			for domainName, entry := range dpass.Programs {
				domain, ok := ParseDomain(domainName)
				if !ok {
					return nil, errors.Mark(errors.Newf("technique %q: unknown domain %q", dt.Name, domainName), ErrInvalidDump)
				}
				prog := e.ProgramByEntryPoint(entry)
				if prog == nil {
					return nil, errors.Mark(errors.Newf("technique %q: unknown program %q", dt.Name, entry), ErrInvalidDump)
				}
				pass.Programs[domain] = prog
			}
			for _, ds := range dpass.States {
				s, err := ds.state()
				if err != nil {
					return nil, errors.Wrapf(err, "technique %q", dt.Name)
				}
				pass.States = append(pass.States, s)
			}
			t.Passes = append(t.Passes, pass)
		}
		e.Techniques = append(e.Techniques, t)
	}

	return e, nil
}

func (d *dumpParameter) parameter() (*Parameter, error) {
	p := &Parameter{
		Name:      d.Name,
		Semantic:  d.Semantic,
		BaseType:  d.Type,
		Rows:      d.Rows,
		Columns:   d.Columns,
		ArraySize: d.ArraySize,
		Values:    d.Values,
		Used:      d.Used,
	}
	if p.Rows == 0 {
		p.Rows = 1
	}
	if p.Columns == 0 {
		p.Columns = 1
	}

	switch d.Variability {
	case "", "uniform":
		p.Variability = Uniform
	case "varying":
		p.Variability = Varying
	case "constant":
		p.Variability = Constant
	default:
		return nil, errors.Mark(errors.Newf("parameter %q: unknown variability %q", d.Name, d.Variability), ErrInvalidDump)
	}

	switch d.Direction {
	case "", "in":
		p.Direction = In
	case "out":
		p.Direction = Out
	case "inout":
		p.Direction = InOut
	default:
		return nil, errors.Mark(errors.Newf("parameter %q: unknown direction %q", d.Name, d.Direction), ErrInvalidDump)
	}

	for _, ds := range d.SamplerStates {
		s, err := ds.state()
		if err != nil {
			return nil, errors.Wrapf(err, "sampler %q", d.Name)
		}
		p.SamplerStates = append(p.SamplerStates, s)
	}
	return p, nil
}

func (d *dumpState) state() (StateAssignment, error) {
	s := StateAssignment{Name: d.Name}
	switch d.Kind {
	case "float":
		s.Value.Kind = KindFloat
	case "int":
		s.Value.Kind = KindInt
	case "bool":
		s.Value.Kind = KindBool
	case "string":
		s.Value.Kind = KindString
	case "program":
		s.Value.Kind = KindProgram
	default:
		return s, errors.Mark(errors.Newf("state %q: unknown kind %q", d.Name, d.Kind), ErrInvalidDump)
	}
	s.Value.Numbers = d.Values
	s.Value.String = d.String
	return s, nil
}

// DumpLoader loads effects that were already compiled and dumped to disk.
// The profile is not checked; the dump is taken as compiled for it.
type DumpLoader struct{}

// Load implements Loader.
func (DumpLoader) Load(_ context.Context, path string, _ Profile) (*Effect, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open effect dump")
	}
	defer f.Close()

	e, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return e, nil
}
