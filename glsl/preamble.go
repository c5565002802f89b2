// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"regexp"
	"strconv"
	"strings"
)

// Dialect selects the flavor of the emitted preamble.
type Dialect uint8

const (
	// Portable code compiles both on desktop GL and on GL ES; precision
	// statements are guarded by GL_ES.
	Portable Dialect = iota
	// ES code targets GL ES 2.0 only.
	ES
)

const (
	derivativesExtension = "#extension GL_OES_standard_derivatives : enable\n"
	precisionBlock       = "#define TZ_LOWP lowp\nprecision mediump float;\nprecision mediump int;\n"
)

// maxTexCoords is the number of fixed-function texture coordinate sets.
const maxTexCoords = 8

var derivativePattern = regexp.MustCompile(`\b(dFdx|dFdy|fwidth)\b`)

// UsesDerivatives reports whether text calls a derivative function.
func UsesDerivatives(text string) bool {
	return derivativePattern.MatchString(text)
}

// Preamble returns the header that portable or ES code needs in front of
// its declarations.
func Preamble(d Dialect, derivatives bool) string {
	var b strings.Builder
	if d == Portable {
		b.WriteString("#ifdef GL_ES\n")
	}
	if derivatives {
		b.WriteString(derivativesExtension)
	}
	b.WriteString(precisionBlock)
	if d == Portable {
		b.WriteString("#else\n#define TZ_LOWP\n#endif\n")
	}
	return b.String()
}

type varying struct {
	decl     string
	name     string
	builtins []string
}

var varyings = []varying{
	{"varying TZ_LOWP vec4 tz_Color;", "tz_Color", []string{"gl_Color", "gl_FrontColor", "gl_BackColor"}},
	{"varying TZ_LOWP vec4 tz_SecondaryColor;", "tz_SecondaryColor", []string{"gl_SecondaryColor", "gl_FrontSecondaryColor", "gl_BackSecondaryColor"}},
	{"varying vec4 tz_ClipVertex;", "tz_ClipVertex", []string{"gl_ClipVertex"}},
	{"varying float tz_FogFragCoord;", "tz_FogFragCoord", []string{"gl_FogFragCoord"}},
}

// RedeclareVaryings renames the fixed-function varyings used in text to
// user varyings and returns the rewritten text with the declarations they
// need.
func RedeclareVaryings(text string) (string, []string) {
	var decls []string
	for _, v := range varyings {
		used := false
		for _, b := range v.builtins {
			if strings.Contains(text, b) {
				text = strings.ReplaceAll(text, b, v.name)
				used = true
			}
		}
		if used {
			decls = append(decls, v.decl)
		}
	}

	if strings.Contains(text, "gl_TexCoord") {
		n := 0
		for i := 0; i < maxTexCoords; i++ {
			if strings.Contains(text, "gl_TexCoord["+strconv.Itoa(i)+"]") {
				n = i + 1
			}
		}
		// Dynamic indexing may touch any set.
		if n == 0 {
			n = maxTexCoords
		}
		text = strings.ReplaceAll(text, "gl_TexCoord", "tz_TexCoord")
		decls = append(decls, "varying vec4 tz_TexCoord["+strconv.Itoa(n)+"];")
	}
	return text, decls
}

// Finish adds the preamble and the varying declarations to text. They are
// inserted after the line holding the last preprocessor directive so that
// #extension lines stay first, or at the start when there is none or the
// last directive ends the text.
func Finish(text string, d Dialect) string {
	derivatives := UsesDerivatives(text)
	text, decls := RedeclareVaryings(text)

	header := Preamble(d, derivatives)
	for _, decl := range decls {
		header += decl + "\n"
	}
	return insertAfterDirectives(text, header)
}

func insertAfterDirectives(text, header string) string {
	hash := strings.LastIndexByte(text, '#')
	if hash < 0 {
		return header + text
	}
	nl := strings.IndexByte(text[hash:], '\n')
	if nl < 0 {
		return header + text
	}
	at := hash + nl + 1
	return text[:at] + header + text[at:]
}
