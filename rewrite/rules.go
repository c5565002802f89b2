// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package rewrite

import (
	"regexp"
	"strings"

	"github.com/gogpu/cgfx2json/internal/srcutil"
)

type rule struct {
	pattern *regexp.Regexp
	repl    string
}

func (r rule) apply(text string) string {
	return r.pattern.ReplaceAllString(text, r.repl)
}

// numberRules turn the scientific notation the compiler prints for float
// constants into plain decimals. Each rule expects the output of the ones
// before it.
var numberRules = []rule{
	{regexp.MustCompile(`\.0+E\+0+\b`), ".0"},
	{regexp.MustCompile(`0*E\+0+\b`), ""},
	{regexp.MustCompile(`(\d+)\.([0-9][1-9])0*E\+0+2\b`), "${1}${2}.0"},
	{regexp.MustCompile(`(\d+)\.([1-9])0*E\+0+1\b`), "${1}${2}.0"},
	{regexp.MustCompile(`(\d+)\.0+E\-0+1\b`), "0.${1}"},
	{regexp.MustCompile(`(\d+)\.00+E(\+\d+)\b`), "${1}.0E${2}"},
}

// vendorRules standardize extension names. The manifest consumer decides
// the language version, so #version directives are dropped.
var vendorRules = []rule{
	{regexp.MustCompile(`ATI_draw_buffers`), "EXT_draw_buffers"},
	{regexp.MustCompile(`ARB_draw_buffers\s*:\s*enable`), "EXT_draw_buffers:require"},
	{regexp.MustCompile(`#version \d+`), ""},
}

// NormalizeNumbers applies the number rules to text.
func NormalizeNumbers(text string) string {
	for _, r := range numberRules {
		text = r.apply(text)
	}
	return text
}

// FixVendorExtensions applies the vendor rules to text.
func FixVendorExtensions(text string) string {
	for _, r := range vendorRules {
		text = r.apply(text)
	}
	return text
}

var structPattern = regexp.MustCompile(`\bstruct\s+(\w+)\s*\{[^}]*\};`)

// PruneStructs deletes the struct declarations whose name is not used
// anywhere but in the declaration itself.
func PruneStructs(text string) string {
	for _, m := range structPattern.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if srcutil.CountWord(text, name) > 1 {
			continue
		}
		decl := regexp.MustCompile(`\bstruct\s+` + regexp.QuoteMeta(name) + `\s*\{[^}]*\};`)
		text = decl.ReplaceAllLiteralString(text, "")
	}
	return text
}

const deadReturn = "return;}"

// StripDeadReturn turns a trailing "return;}" into "}". Some drivers reject
// an empty return right before the end of main.
func StripDeadReturn(text string) string {
	if strings.HasSuffix(text, deadReturn) {
		return text[:len(text)-len(deadReturn)] + "}"
	}
	return text
}

// StripAssemblyComments removes every '#' up to the end of its line.
// The line break is kept.
func StripAssemblyComments(text string) string {
	if !strings.Contains(text, "#") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] != '#' {
			b.WriteByte(text[i])
			continue
		}
		for i+1 < len(text) && text[i+1] != '\n' {
			i++
		}
	}
	return b.String()
}
