// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import "strings"

// reserved holds the keywords, future reserved words and built-in function
// names of GLSL 1.20 and GLSL ES 1.00, the dialects the compiler emits.
var reserved = map[string]struct{}{
	// Keywords
	"attribute": {}, "const": {}, "uniform": {}, "varying": {},
	"centroid": {}, "invariant": {}, "precision": {},
	"break": {}, "continue": {}, "do": {}, "for": {}, "while": {},
	"if": {}, "else": {}, "in": {}, "out": {}, "inout": {},
	"true": {}, "false": {}, "discard": {}, "return": {}, "struct": {},
	"lowp": {}, "mediump": {}, "highp": {},

	// Types
	"void": {}, "bool": {}, "int": {}, "float": {},
	"vec2": {}, "vec3": {}, "vec4": {},
	"ivec2": {}, "ivec3": {}, "ivec4": {},
	"bvec2": {}, "bvec3": {}, "bvec4": {},
	"mat2": {}, "mat3": {}, "mat4": {},
	"mat2x2": {}, "mat2x3": {}, "mat2x4": {},
	"mat3x2": {}, "mat3x3": {}, "mat3x4": {},
	"mat4x2": {}, "mat4x3": {}, "mat4x4": {},
	"sampler1D": {}, "sampler2D": {}, "sampler3D": {}, "samplerCube": {},
	"sampler1DShadow": {}, "sampler2DShadow": {},

	// Reserved for future use
	"asm": {}, "class": {}, "union": {}, "enum": {}, "typedef": {}, "template": {},
	"this": {}, "packed": {}, "goto": {}, "switch": {}, "default": {},
	"inline": {}, "noinline": {}, "volatile": {}, "public": {}, "static": {},
	"extern": {}, "external": {}, "interface": {}, "flat": {},
	"long": {}, "short": {}, "double": {}, "half": {}, "fixed": {}, "unsigned": {},
	"superp": {}, "input": {}, "output": {},
	"hvec2": {}, "hvec3": {}, "hvec4": {}, "dvec2": {}, "dvec3": {}, "dvec4": {},
	"fvec2": {}, "fvec3": {}, "fvec4": {},
	"sampler2DRect": {}, "sampler3DRect": {}, "sampler2DRectShadow": {},
	"sizeof": {}, "cast": {}, "namespace": {}, "using": {},

	// Built-in functions
	"radians": {}, "degrees": {}, "sin": {}, "cos": {}, "tan": {},
	"asin": {}, "acos": {}, "atan": {},
	"pow": {}, "exp": {}, "log": {}, "exp2": {}, "log2": {}, "sqrt": {}, "inversesqrt": {},
	"abs": {}, "sign": {}, "floor": {}, "ceil": {}, "fract": {}, "mod": {},
	"min": {}, "max": {}, "clamp": {}, "mix": {}, "step": {}, "smoothstep": {},
	"length": {}, "distance": {}, "dot": {}, "cross": {}, "normalize": {},
	"ftransform": {}, "faceforward": {}, "reflect": {}, "refract": {},
	"matrixCompMult": {}, "outerProduct": {}, "transpose": {},
	"lessThan": {}, "lessThanEqual": {}, "greaterThan": {}, "greaterThanEqual": {},
	"equal": {}, "notEqual": {}, "any": {}, "all": {}, "not": {},
	"texture1D": {}, "texture1DProj": {}, "texture1DLod": {}, "texture1DProjLod": {},
	"texture2D": {}, "texture2DProj": {}, "texture2DLod": {}, "texture2DProjLod": {},
	"texture3D": {}, "texture3DProj": {}, "texture3DLod": {}, "texture3DProjLod": {},
	"textureCube": {}, "textureCubeLod": {},
	"shadow1D": {}, "shadow2D": {}, "shadow1DProj": {}, "shadow2DProj": {},
	"shadow1DLod": {}, "shadow2DLod": {}, "shadow1DProjLod": {}, "shadow2DProjLod": {},
	"dFdx": {}, "dFdy": {}, "fwidth": {},
	"noise1": {}, "noise2": {}, "noise3": {}, "noise4": {},
	"main": {},
}

// IsReserved reports whether name cannot be used as an identifier in the
// GLSL emitted for the manifest. Names in the gl_ namespace are reserved.
func IsReserved(name string) bool {
	if strings.HasPrefix(name, "gl_") {
		return true
	}
	_, ok := reserved[name]
	return ok
}
