// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import "strings"

// reservedKeywords contains the HLSL keywords, effect framework keywords and
// intrinsics accepted by the SM3 and SM5 compilers.
var reservedKeywords = map[string]struct{}{
	// Language keywords
	"break": {}, "case": {}, "cbuffer": {}, "centroid": {}, "class": {},
	"column_major": {}, "compile": {}, "const": {}, "continue": {},
	"default": {}, "discard": {}, "do": {}, "else": {}, "export": {},
	"extern": {}, "false": {}, "for": {}, "groupshared": {}, "if": {},
	"in": {}, "inline": {}, "inout": {}, "interface": {}, "linear": {},
	"matrix": {}, "namespace": {}, "nointerpolation": {}, "noperspective": {},
	"out": {}, "packoffset": {}, "precise": {}, "register": {}, "return": {},
	"row_major": {}, "sample": {}, "shared": {}, "snorm": {}, "static": {},
	"struct": {}, "switch": {}, "tbuffer": {}, "true": {}, "typedef": {},
	"uniform": {}, "unorm": {}, "unsigned": {}, "vector": {}, "void": {},
	"volatile": {}, "while": {},

	// Effect framework
	"technique": {}, "technique10": {}, "technique11": {}, "pass": {},
	"sampler_state": {}, "stateblock": {}, "stateblock_state": {},
	"compile_fragment": {}, "pixelfragment": {}, "vertexfragment": {},
	"PixelShader": {}, "VertexShader": {}, "GeometryShader": {},
	"DomainShader": {}, "HullShader": {}, "ComputeShader": {},
	"BlendState": {}, "DepthStencilState": {}, "RasterizerState": {},
	"DepthStencilView": {}, "RenderTargetView": {},

	// Objects
	"texture": {}, "Texture": {}, "texture1D": {}, "texture2D": {},
	"texture3D": {}, "textureCUBE": {},
	"Texture1D": {}, "Texture1DArray": {}, "Texture2D": {}, "Texture2DArray": {},
	"Texture2DMS": {}, "Texture2DMSArray": {}, "Texture3D": {},
	"TextureCube": {}, "TextureCubeArray": {},
	"sampler": {}, "sampler1D": {}, "sampler2D": {}, "sampler3D": {},
	"samplerCUBE": {}, "SamplerState": {}, "SamplerComparisonState": {},
	"Buffer": {}, "StructuredBuffer": {}, "ByteAddressBuffer": {},
	"RWBuffer": {}, "RWStructuredBuffer": {}, "RWByteAddressBuffer": {},
	"RWTexture1D": {}, "RWTexture2D": {}, "RWTexture3D": {},
	"AppendStructuredBuffer": {}, "ConsumeStructuredBuffer": {},
	"string": {}, "asm": {}, "asm_fragment": {},

	// Intrinsics
	"abs": {}, "acos": {}, "all": {}, "any": {}, "asfloat": {}, "asin": {},
	"asint": {}, "asuint": {}, "atan": {}, "atan2": {}, "ceil": {},
	"clamp": {}, "clip": {}, "cos": {}, "cosh": {}, "cross": {},
	"ddx": {}, "ddx_coarse": {}, "ddx_fine": {}, "ddy": {}, "ddy_coarse": {},
	"ddy_fine": {}, "degrees": {}, "determinant": {}, "distance": {},
	"dot": {}, "exp": {}, "exp2": {}, "faceforward": {}, "floor": {},
	"fmod": {}, "frac": {}, "frexp": {}, "fwidth": {}, "isfinite": {},
	"isinf": {}, "isnan": {}, "ldexp": {}, "length": {}, "lerp": {},
	"lit": {}, "log": {}, "log10": {}, "log2": {}, "max": {}, "min": {},
	"modf": {}, "mul": {}, "noise": {}, "normalize": {}, "pow": {},
	"radians": {}, "rcp": {}, "reflect": {}, "refract": {}, "round": {},
	"rsqrt": {}, "saturate": {}, "sign": {}, "sin": {}, "sincos": {},
	"sinh": {}, "smoothstep": {}, "sqrt": {}, "step": {}, "tan": {},
	"tanh": {}, "transpose": {}, "trunc": {},
	"tex1D": {}, "tex1Dbias": {}, "tex1Dgrad": {}, "tex1Dlod": {}, "tex1Dproj": {},
	"tex2D": {}, "tex2Dbias": {}, "tex2Dgrad": {}, "tex2Dlod": {}, "tex2Dproj": {},
	"tex3D": {}, "tex3Dbias": {}, "tex3Dgrad": {}, "tex3Dlod": {}, "tex3Dproj": {},
	"texCUBE": {}, "texCUBEbias": {}, "texCUBEgrad": {}, "texCUBElod": {}, "texCUBEproj": {},
	"GetRenderTargetSampleCount": {}, "GetRenderTargetSamplePosition": {},
	"AllMemoryBarrier": {}, "GroupMemoryBarrier": {}, "DeviceMemoryBarrier": {},
}

// caseInsensitiveKeywords are matched regardless of case by the effect
// compilers.
var caseInsensitiveKeywords = map[string]struct{}{
	"asm":         {},
	"decl":        {},
	"pass":        {},
	"technique":   {},
	"texture1d":   {},
	"texture2d":   {},
	"texture3d":   {},
	"texturecube": {},
}

// typeShorthands contains the scalar, vector and matrix type names.
var typeShorthands = func() map[string]struct{} {
	result := make(map[string]struct{})
	for _, base := range []string{"bool", "int", "uint", "dword", "half", "float", "double", "min16float", "min16int", "min16uint"} {
		result[base] = struct{}{}
		for r := 1; r <= 4; r++ {
			result[base+string(rune('0'+r))] = struct{}{}
			for c := 1; c <= 4; c++ {
				result[base+string(rune('0'+r))+"x"+string(rune('0'+c))] = struct{}{}
			}
		}
	}
	return result
}()

// IsReserved reports whether name is an HLSL reserved word, including the
// keywords the compilers match without regard to case.
func IsReserved(name string) bool {
	if _, ok := reservedKeywords[name]; ok {
		return true
	}
	if _, ok := typeShorthands[name]; ok {
		return true
	}
	_, ok := caseInsensitiveKeywords[strings.ToLower(name)]
	return ok
}
