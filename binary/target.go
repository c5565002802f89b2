// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package binary runs external compile scripts over rewritten programs and
// embeds their output in the manifest.
//
// A script receives the program code on stdin and its type, entry point
// and, for HLSL targets, compiler profile as arguments:
//
//	script vertex vp vs_5_0 < code > artifact
//
// Scripts ending in .wasm run in an embedded WASI runtime; anything else is
// started as a process.
package binary

import (
	"encoding/base64"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/gogpu/cgfx2json/rewrite"
)

// ErrInvalidTarget is returned for malformed "prop,script" values.
var ErrInvalidTarget = errors.New("binary target must be 'property,script'")

// ErrScriptFailed marks failures of compile scripts.
var ErrScriptFailed = errors.New("compile script failed")

// Target is one compile script and the manifest property its output is
// stored under.
type Target struct {
	Property string
	Script   string

	// Language is the language of the code fed to the script.
	Language rewrite.Language
}

// ParseTarget parses a "prop,script" flag value.
func ParseTarget(value string, lang rewrite.Language) (Target, error) {
	prop, script, ok := strings.Cut(value, ",")
	prop = strings.TrimSpace(prop)
	script = strings.TrimSpace(script)
	if !ok || prop == "" || script == "" {
		return Target{}, errors.Wrapf(ErrInvalidTarget, "%q", value)
	}
	return Target{Property: prop, Script: script, Language: lang}, nil
}

// IsWASM reports whether the script runs in the WASI runtime.
func (t Target) IsWASM() bool {
	return strings.EqualFold(pathExt(t.Script), ".wasm")
}

func pathExt(p string) string {
	if i := strings.LastIndexAny(p, `./\`); i >= 0 && p[i] == '.' {
		return p[i:]
	}
	return ""
}

// Job is one program to compile.
type Job struct {
	Code  string
	Type  string
	Entry string

	// Profile is the compiler profile, such as "ps_5_0". Empty for
	// languages without profiles.
	Profile string
}

// Args returns the script arguments for j.
func (j Job) Args() []string {
	args := []string{j.Type, j.Entry}
	if j.Profile != "" {
		args = append(args, j.Profile)
	}
	return args
}

// Embed returns out as a manifest string: printable text is kept as is,
// anything else is base64 encoded.
func Embed(out []byte) string {
	if isPrintable(out) {
		return string(out)
	}
	return base64.StdEncoding.EncodeToString(out)
}

func isPrintable(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
