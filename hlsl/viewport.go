// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"regexp"
	"strings"
)

// ViewportFlipUniform scales the clip-space Y axis. The runtime sets it to
// -1 when rendering into a texture and 1 otherwise.
const ViewportFlipUniform = "tz_ViewportFlipY"

const returnOutput = "return cout;"

var (
	outputTypePattern = regexp.MustCompile(`(\w+)\s+cout\s*[;=]`)
	positionPattern   = regexp.MustCompile(`(\w+)\s*:\s*(?i:SV_Position|POSITION0?)\b`)
)

// PositionField returns the field of the struct declared as structName that
// carries the clip-space position.
func PositionField(text, structName string) (string, bool) {
	re := regexp.MustCompile(`\bstruct\s+` + regexp.QuoteMeta(structName) + `\s*\{([^}]*)\}`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	f := positionPattern.FindStringSubmatch(m[1])
	if f == nil {
		return "", false
	}
	return f[1], true
}

// InjectViewportTransform makes the vertex output follow GL conventions:
// Y is scaled by tz_ViewportFlipY and depth is remapped from [-w,w] to
// [0,w]. Programs that do not return their output through cout are
// unchanged.
func InjectViewportTransform(text string) string {
	if !strings.Contains(text, returnOutput) {
		return text
	}
	var outputType string
	for _, m := range outputTypePattern.FindAllStringSubmatch(text, -1) {
		if m[1] != "return" {
			outputType = m[1]
			break
		}
	}
	if outputType == "" {
		return text
	}
	field, ok := PositionField(text, outputType)
	if !ok {
		return text
	}

	p := "cout." + field
	fix := p + ".y=" + p + ".y*" + ViewportFlipUniform + ";" +
		p + ".z=(" + p + ".z+" + p + ".w)*0.5;"
	text = strings.ReplaceAll(text, returnOutput, fix+returnOutput)

	at := headerEnd(text)
	return text[:at] + "float " + ViewportFlipUniform + ";\n" + text[at:]
}

// headerEnd returns the offset just past the leading directive and line
// comment lines of text. Anything before it is at global scope.
func headerEnd(text string) int {
	at := 0
	for at < len(text) {
		nl := strings.IndexByte(text[at:], '\n')
		if nl < 0 {
			break
		}
		line := strings.TrimSpace(text[at : at+nl])
		if !strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "//") {
			break
		}
		at += nl + 1
	}
	return at
}
