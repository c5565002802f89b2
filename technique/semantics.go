// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package technique

import "strings"

// semantics maps vertex input semantics to the generic attribute the
// runtime binds them to.
var semantics = map[string]string{
	"POSITION":      "ATTR0",
	"POSITION0":     "ATTR0",
	"BLENDWEIGHT":   "ATTR1",
	"BLENDWEIGHT0":  "ATTR1",
	"NORMAL":        "ATTR2",
	"NORMAL0":       "ATTR2",
	"COLOR":         "ATTR3",
	"COLOR0":        "ATTR3",
	"COLOR1":        "ATTR4",
	"SPECULAR":      "ATTR4",
	"FOGCOORD":      "ATTR5",
	"TESSFACTOR":    "ATTR5",
	"PSIZE":         "ATTR6",
	"PSIZE0":        "ATTR6",
	"BLENDINDICES":  "ATTR7",
	"BLENDINDICES0": "ATTR7",
	"TEXCOORD":      "ATTR8",
	"TEXCOORD0":     "ATTR8",
	"TEXCOORD1":     "ATTR9",
	"TEXCOORD2":     "ATTR10",
	"TEXCOORD3":     "ATTR11",
	"TEXCOORD4":     "ATTR12",
	"TEXCOORD5":     "ATTR13",
	"TEXCOORD6":     "ATTR14",
	"TEXCOORD7":     "ATTR15",
	"TANGENT":       "ATTR14",
	"TANGENT0":      "ATTR14",
	"BINORMAL":      "ATTR15",
	"BINORMAL0":     "ATTR15",
}

// Attribute returns the generic attribute for a vertex input semantic.
// ATTR semantics are already generic and map to themselves.
func Attribute(semantic string) (string, bool) {
	if strings.HasPrefix(semantic, "ATTR") {
		return semantic, true
	}
	attr, ok := semantics[semantic]
	return attr, ok
}

// validStates lists the pass states GL ES 2.0 can express.
var validStates = map[string]struct{}{
	"DepthTestEnable":         {},
	"DepthFunc":               {},
	"DepthMask":               {},
	"BlendEnable":             {},
	"BlendFunc":               {},
	"CullFaceEnable":          {},
	"CullFace":                {},
	"FrontFace":               {},
	"ColorMask":               {},
	"StencilTestEnable":       {},
	"StencilFunc":             {},
	"StencilOp":               {},
	"PolygonOffsetFillEnable": {},
	"PolygonOffset":           {},
	"LineWidth":               {},
	"VertexProgram":           {},
	"FragmentProgram":         {},
}

// IsValidState reports whether a pass state may appear in the manifest.
func IsValidState(name string) bool {
	_, ok := validStates[name]
	return ok
}
