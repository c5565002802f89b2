// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package effect

// Profile selects the compiler target an effect is compiled for.
type Profile uint8

const (
	// ProfileGLSL targets desktop GLSL profiles.
	ProfileGLSL Profile = iota

	// ProfileGLSLES targets GLSL profiles post-processed for GLSL ES.
	ProfileGLSLES

	// ProfileASM targets the legacy ARB assembly profiles.
	ProfileASM

	// ProfileHLSL3 targets HLSL Shader Model 3.
	ProfileHLSL3

	// ProfileHLSL5 targets HLSL Shader Model 5.
	ProfileHLSL5
)

// String returns the profile name passed to the front-end.
func (p Profile) String() string {
	switch p {
	case ProfileGLSL:
		return "glsl"
	case ProfileGLSLES:
		return "glsles"
	case ProfileASM:
		return "asm"
	case ProfileHLSL3:
		return "hlsl3"
	case ProfileHLSL5:
		return "hlsl5"
	default:
		return "unknown"
	}
}

// compilerArgs remaps legacy semantic aliases onto the generic slots the
// runtime binds, and unrolls all loops.
var compilerArgs = []string{
	"-DTANGENT0=TEXCOORD6",
	"-DTANGENT=TEXCOORD6",
	"-DBINORMAL0=TEXCOORD7",
	"-DBINORMAL=TEXCOORD7",
	"-DBLENDINDICES0=ATTR7",
	"-DBLENDINDICES=ATTR7",
	"-DBLENDWEIGHT0=ATTR1",
	"-DBLENDWEIGHT=ATTR1",
	"-unroll",
	"all",
}

// CompilerArgs returns the arguments every profile compiles with.
func (p Profile) CompilerArgs() []string {
	out := make([]string, len(compilerArgs))
	copy(out, compilerArgs)
	return out
}
