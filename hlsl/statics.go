// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"regexp"
	"strings"

	"github.com/gogpu/cgfx2json/internal/srcutil"
)

var arraySuffix = regexp.MustCompile(`\[[^\]]*\]`)

// storageQualifiers keep a global declaration as it is.
var storageQualifiers = map[string]struct{}{
	"uniform":     {},
	"static":      {},
	"extern":      {},
	"const":       {},
	"shared":      {},
	"groupshared": {},
	"typedef":     {},
}

// MarkStatic qualifies module-level variable declarations with static so
// the compiler does not turn them into uniforms. Declarations that are
// uniforms are left alone: isUniform is asked for every declared name, and
// declarations with a storage qualifier, a register binding or a texture
// or sampler type are never changed.
func MarkStatic(text string, isUniform func(name string) bool) string {
	var b strings.Builder
	b.Grow(len(text) + 64)

	i := 0
	for i < len(text) {
		j := i
		for j < len(text) && isSpace(text[j]) {
			j++
		}
		b.WriteString(text[i:j])
		i = j
		if i >= len(text) {
			break
		}

		if text[i] == '#' {
			end := strings.IndexByte(text[i:], '\n')
			if end < 0 {
				end = len(text) - i
			} else {
				end++
			}
			b.WriteString(text[i : i+end])
			i += end
			continue
		}

		end, decl := topLevelStatement(text, i)
		stmt := text[i:end]
		if decl && needsStatic(stmt, isUniform) {
			b.WriteString("static ")
		}
		b.WriteString(stmt)
		i = end
	}
	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// topLevelStatement returns the end of the statement starting at start and
// whether it is a declaration terminated by ';'. Function, struct and
// cbuffer bodies end at their closing brace.
func topLevelStatement(text string, start int) (int, bool) {
	parens := 0
	assigned := false
	for k := start; k < len(text); k++ {
		switch c := text[k]; c {
		case '(':
			parens++
		case ')':
			parens--
		case '=':
			if parens == 0 {
				assigned = true
			}
		case ';':
			if parens == 0 {
				return k + 1, true
			}
		case '{':
			end := matchingBrace(text, k)
			if end < 0 {
				return len(text), false
			}
			if !assigned {
				return end + 1, false
			}
			k = end
		}
	}
	return len(text), false
}

func matchingBrace(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func needsStatic(stmt string, isUniform func(string) bool) bool {
	decl := strings.TrimSuffix(stmt, ";")
	if eq := strings.IndexByte(decl, '='); eq >= 0 {
		decl = decl[:eq]
	}
	// Prototypes and register bindings.
	if strings.ContainsRune(decl, '(') {
		return false
	}
	if colon := strings.IndexByte(decl, ':'); colon >= 0 {
		decl = decl[:colon]
	}
	decl = arraySuffix.ReplaceAllString(decl, "")

	head, rest, _ := strings.Cut(decl, ",")
	fields := strings.Fields(head)
	if len(fields) < 2 {
		return false
	}
	for _, q := range fields[:len(fields)-1] {
		if _, ok := storageQualifiers[q]; ok {
			return false
		}
	}
	typ := strings.ToLower(fields[len(fields)-2])
	if strings.HasPrefix(typ, "sampler") || strings.HasPrefix(typ, "texture") {
		return false
	}

	names := []string{fields[len(fields)-1]}
	for _, n := range strings.Split(rest, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	for _, name := range names {
		if !isIdent(name) || isUniform(name) {
			return false
		}
	}
	return true
}

func isIdent(s string) bool {
	if s == "" || ('0' <= s[0] && s[0] <= '9') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !srcutil.IsIdentByte(s[i]) {
			return false
		}
	}
	return true
}
