// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package param serializes effect parameters, sampler states and pass
// states into the manifest.
package param

import (
	"github.com/cockroachdb/errors"

	"github.com/gogpu/cgfx2json/effect"
	"github.com/gogpu/cgfx2json/manifest"
)

// ErrUnexpectedState is returned for state values that cannot be emitted.
var ErrUnexpectedState = errors.New("unexpected state assignment type")

// Rows returns the manifest row count of p. Arrays multiply the row count
// by their total element count.
func Rows(p *effect.Parameter) int {
	rows := max(p.Rows, 1)
	if p.ArraySize > 0 {
		rows *= p.ArraySize
	}
	return rows
}

// Write emits p as an object keyed by its name.
func Write(w *manifest.Writer, p *effect.Parameter) {
	w.BeginObject(p.Name)

	rows := Rows(p)
	columns := max(p.Columns, 1)

	w.String("type", p.BaseType)
	if rows > 1 {
		w.Int("rows", rows)
	}
	if columns > 1 {
		w.Int("columns", columns)
	}

	switch p.BaseType {
	case effect.BaseFloat, effect.BaseInt, effect.BaseBool:
		values := p.Values
		if n := rows * columns; len(values) > n {
			values = values[:n]
		}
		if hasNonDefault(values) {
			w.BeginList("values")
			for _, v := range values {
				if p.BaseType == effect.BaseFloat {
					w.Float("", v)
				} else {
					w.Int("", int(v))
				}
			}
			w.EndArray()
		}
	}

	w.EndObject()
}

func hasNonDefault(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return true
		}
	}
	return false
}

// WriteSampler emits the sampler states of p as an object keyed by its name.
// States that cannot be emitted are skipped and reported in the returned
// error; the object is always closed.
func WriteSampler(w *manifest.Writer, p *effect.Parameter) error {
	var errs error
	w.BeginObject(p.Name)
	for _, s := range p.SamplerStates {
		if err := WriteState(w, s); err != nil {
			errs = errors.CombineErrors(errs, errors.Wrapf(err, "sampler %s", p.Name))
		}
	}
	w.EndObject()
	return errs
}

// WriteState emits one typed state value keyed by the state name.
// Program bindings are not emitted.
func WriteState(w *manifest.Writer, s effect.StateAssignment) error {
	v := s.Value
	switch v.Kind {
	case effect.KindProgram:
		return nil

	case effect.KindString:
		w.String(s.Name, v.String)
		return nil

	case effect.KindFloat, effect.KindInt, effect.KindBool:
		n := v.Count()
		if n == 0 || n > 4 {
			return errors.Wrapf(ErrUnexpectedState, "%s: %s%d", s.Name, v.Kind, n)
		}
		if n == 1 {
			writeScalar(w, s.Name, v.Kind, v.Numbers[0])
			return nil
		}
		w.BeginList(s.Name)
		for _, x := range v.Numbers {
			writeScalar(w, "", v.Kind, x)
		}
		w.EndArray()
		return nil

	default:
		return errors.Wrapf(ErrUnexpectedState, "%s: %s", s.Name, v.Kind)
	}
}

func writeScalar(w *manifest.Writer, key string, kind effect.ValueKind, x float64) {
	switch kind {
	case effect.KindFloat:
		w.Float(key, x)
	case effect.KindInt:
		w.Int(key, int(x))
	case effect.KindBool:
		w.Bool(key, x != 0)
	}
}
