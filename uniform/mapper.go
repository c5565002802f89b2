// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package uniform

import (
	"regexp"
	"strings"

	"github.com/gogpu/cgfx2json/internal/srcutil"
)

// IsAssembly reports whether source is compiler assembly output.
func IsAssembly(source string) bool {
	return strings.HasPrefix(source, "!!ARB")
}

var mainPattern = regexp.MustCompile(`\bmain\s*\(`)

// Mapper resolves compiled uniform names from the annotation comments the
// compiler writes at the top of each program, e.g.
//
//	//var float4x4 worldViewProjection :  : _worldViewProjection1 : 1 : 1
//	#var float4x4 worldViewProjection :  : c[0], 4 : 1 : 1
type Mapper struct {
	table *Table
}

// NewMapper returns a Mapper recording bindings in t.
func NewMapper(t *Table) *Mapper {
	return &Mapper{table: t}
}

// Table returns the table the mapper records bindings in.
func (m *Mapper) Table() *Table {
	return m.table
}

// Map looks up the compiled name of the uniform name in source.
//
// It returns the entry to list for the pass and whether the uniform is
// listed at all. Uniforms without an annotation, and uniforms whose compiled
// name is never referenced by main, are skipped. For assembly the entry is
// "name:location" and the table is not touched. Otherwise the entry is the
// name itself and the binding is recorded; a binding that contradicts an
// earlier one is returned as a conflict error.
func (m *Mapper) Map(source, name string) (string, bool, error) {
	asm := IsAssembly(source)
	marker := "//var"
	if asm {
		marker = "#var"
	}
	vars := strings.Index(source, marker)
	if vars < 0 {
		return "", false, nil
	}

	at := findAnnotatedName(source, vars+1, name)
	if at < 0 {
		return "", false, nil
	}
	end := at + len(name)

	mapped, mappedEnd, ok := mappedVariable(source, end)
	if !ok {
		return "", false, nil
	}

	if asm {
		location, ok := registerLocation(source[mappedEnd:])
		if !ok {
			return "", false, nil
		}
		return name + ":" + location, true, nil
	}

	if loc := mainPattern.FindStringIndex(source[mappedEnd:]); loc != nil {
		body := source[mappedEnd+loc[1]:]
		if !srcutil.ContainsWord(body, mapped) {
			return "", false, nil
		}
	}

	if err := m.table.Bind(name, mapped); err != nil {
		return "", false, err
	}
	return name, true, nil
}

// findAnnotatedName returns the offset of name in source at or after from,
// where name is a whole token followed by ' ', ':' or '['.
func findAnnotatedName(source string, from int, name string) int {
	for from < len(source) {
		idx := strings.Index(source[from:], name)
		if idx < 0 {
			return -1
		}
		at := from + idx
		end := at + len(name)
		if end < len(source) && strings.IndexByte(" :[", source[end]) >= 0 &&
			(at == 0 || !srcutil.IsIdentByte(source[at-1])) {
			return at
		}
		from = at + 1
	}
	return -1
}

// mappedVariable extracts the token after the second colon following pos.
func mappedVariable(source string, pos int) (string, int, bool) {
	for i := 0; i < 2; i++ {
		colon := strings.IndexByte(source[pos:], ':')
		if colon < 0 {
			return "", 0, false
		}
		pos += colon + 1
	}
	for pos < len(source) && source[pos] <= ' ' {
		pos++
	}
	end := pos
	for end < len(source) && strings.IndexByte(" :[,\r\n", source[end]) < 0 {
		end++
	}
	if end == pos {
		return "", 0, false
	}
	return source[pos:end], end, true
}

// registerLocation returns the first run of digits on the current line,
// as in "[12], 4 : 1" or " 3 : -1".
func registerLocation(rest string) (string, bool) {
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	start := strings.IndexAny(rest, "0123456789")
	if start < 0 {
		return "", false
	}
	end := start
	for end < len(rest) && '0' <= rest[end] && rest[end] <= '9' {
		end++
	}
	return rest[start:end], true
}
