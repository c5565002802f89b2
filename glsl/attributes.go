// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"regexp"
	"strconv"
)

// Attribute binds a fixed-function vertex input to a generic attribute.
type Attribute struct {
	Builtin string
	Name    string
	Type    string
}

// Attributes lists the fixed-function vertex inputs in slot order.
var Attributes = buildAttributes()

var attributePatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(Attributes))
	for i, a := range Attributes {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(a.Builtin) + `\b`)
	}
	return out
}()

func buildAttributes() []Attribute {
	attrs := []Attribute{
		{"gl_Vertex", "ATTR0", "vec4"},
		{"gl_Normal", "ATTR2", "vec3"},
		{"gl_Color", "ATTR3", "vec4"},
		{"gl_SecondaryColor", "ATTR4", "vec4"},
		{"gl_FogCoord", "ATTR5", "float"},
	}
	for i := 0; i < 8; i++ {
		attrs = append(attrs, Attribute{
			Builtin: "gl_MultiTexCoord" + strconv.Itoa(i),
			Name:    "ATTR" + strconv.Itoa(8+i),
			Type:    "vec4",
		})
	}
	return attrs
}

// MaterializeAttributes replaces fixed-function vertex inputs with generic
// attributes and declares each one that is referenced. The table is walked
// backwards and every declaration is prepended, so the declarations end up
// in slot order.
func MaterializeAttributes(text string) string {
	for i := len(Attributes) - 1; i >= 0; i-- {
		re := attributePatterns[i]
		if !re.MatchString(text) {
			continue
		}
		a := Attributes[i]
		text = re.ReplaceAllLiteralString(text, a.Name)
		text = "attribute " + a.Type + " " + a.Name + ";" + text
	}
	return text
}
