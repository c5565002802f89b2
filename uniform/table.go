// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package uniform

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
)

// ErrConflict marks uniform naming conflicts. A conflict means the effect
// cannot be converted consistently and aborts the whole run.
var ErrConflict = errors.New("uniform variable conflict")

// ConflictError reports a canonical uniform name that the compiler mapped
// to two different names.
type ConflictError struct {
	Canonical string
	Existing  string
	Found     string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("uniform variable conflict '%s':\n\t%s\n\t%s", e.Canonical, e.Existing, e.Found)
}

// Pair is one entry of a Table.
type Pair struct {
	Canonical string
	Short     string
}

// Table maps canonical uniform names to the names the compiler assigned
// them. A canonical name maps to exactly one short name for a whole effect.
type Table struct {
	short map[string]string
	names map[string]struct{}
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{
		short: make(map[string]string),
		names: make(map[string]struct{}),
	}
}

// Bind records that canonical was compiled to short. Binding the same pair
// again is a no-op; binding a different short name is a conflict.
func (t *Table) Bind(canonical, short string) error {
	if existing, ok := t.short[canonical]; ok {
		if existing != short {
			return errors.Mark(&ConflictError{Canonical: canonical, Existing: existing, Found: short}, ErrConflict)
		}
		return nil
	}
	t.short[canonical] = short
	t.names[short] = struct{}{}
	return nil
}

// Lookup returns the short name bound to canonical.
func (t *Table) Lookup(canonical string) (string, bool) {
	s, ok := t.short[canonical]
	return s, ok
}

// IsShortName reports whether name is the short name of some uniform.
func (t *Table) IsShortName(name string) bool {
	_, ok := t.names[name]
	return ok
}

// Len returns the number of bound uniforms.
func (t *Table) Len() int {
	return len(t.short)
}

// Pairs returns all bindings sorted by canonical name.
func (t *Table) Pairs() []Pair {
	out := make([]Pair, 0, len(t.short))
	for c, s := range t.short {
		out = append(out, Pair{Canonical: c, Short: s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Canonical < out[j].Canonical })
	return out
}
