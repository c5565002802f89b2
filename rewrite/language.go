// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package rewrite

import (
	"github.com/gogpu/cgfx2json/effect"
	"github.com/gogpu/cgfx2json/glsl"
	"github.com/gogpu/cgfx2json/hlsl"
)

// Language is the target language of rewritten code.
type Language uint8

const (
	// ASM is legacy ARB assembly.
	ASM Language = iota
	// GLSL is portable GLSL that compiles on desktop GL and GL ES.
	GLSL
	// GLSLES is GLSL for GL ES 2.0 only.
	GLSLES
	// HLSL3 is HLSL for Shader Model 3.
	HLSL3
	// HLSL5 is HLSL for Shader Model 5.
	HLSL5
)

// String returns the language name.
func (l Language) String() string {
	switch l {
	case ASM:
		return "asm"
	case GLSL:
		return "glsl"
	case GLSLES:
		return "glsles"
	case HLSL3:
		return "hlsl3"
	case HLSL5:
		return "hlsl5"
	default:
		return "unknown"
	}
}

// LanguageFor returns the language programs compiled for p are written in.
func LanguageFor(p effect.Profile) Language {
	switch p {
	case effect.ProfileASM:
		return ASM
	case effect.ProfileGLSLES:
		return GLSLES
	case effect.ProfileHLSL3:
		return HLSL3
	case effect.ProfileHLSL5:
		return HLSL5
	default:
		return GLSL
	}
}

// Profile returns the profile to compile an effect with to get programs
// in l.
func (l Language) Profile() effect.Profile {
	switch l {
	case ASM:
		return effect.ProfileASM
	case GLSLES:
		return effect.ProfileGLSLES
	case HLSL3:
		return effect.ProfileHLSL3
	case HLSL5:
		return effect.ProfileHLSL5
	default:
		return effect.ProfileGLSL
	}
}

// Target selects the language specific final pass.
type Target uint8

const (
	// TargetNone adds nothing.
	TargetNone Target = iota
	// TargetGLSL adds the precision preamble and varying declarations.
	TargetGLSL
	// TargetHLSL marks globals static and fixes the vertex output.
	TargetHLSL
)

// RuleSet describes which rewrite steps run for a language. Steps always
// run in the same order; a RuleSet only switches them on or off.
type RuleSet struct {
	// StripDirectives drops '#' comments of assembly output.
	StripDirectives bool

	PruneStructs     bool
	NormalizeNumbers bool
	VendorFixups     bool
	RenameUniforms   bool

	// Attributes materializes fixed-function vertex inputs.
	Attributes bool

	StripDeadReturn bool

	Target      Target
	Dialect     glsl.Dialect
	ShaderModel hlsl.ShaderModel

	// IsReserved reports the reserved words of the language. Uniforms
	// named after one are not renamed.
	IsReserved func(name string) bool
}

// Rules returns the rule set of l.
func (l Language) Rules() RuleSet {
	switch l {
	case ASM:
		return RuleSet{
			StripDirectives:  true,
			PruneStructs:     true,
			NormalizeNumbers: true,
		}
	case GLSL, GLSLES:
		rs := RuleSet{
			PruneStructs:     true,
			NormalizeNumbers: true,
			VendorFixups:     true,
			RenameUniforms:   true,
			Attributes:       true,
			StripDeadReturn:  true,
			Target:           TargetGLSL,
			Dialect:          glsl.Portable,
			IsReserved:       glsl.IsReserved,
		}
		if l == GLSLES {
			rs.Dialect = glsl.ES
		}
		return rs
	default:
		rs := RuleSet{
			PruneStructs:     true,
			NormalizeNumbers: true,
			VendorFixups:     true,
			RenameUniforms:   true,
			StripDeadReturn:  true,
			Target:           TargetHLSL,
			ShaderModel:      hlsl.ShaderModel3,
			IsReserved:       hlsl.IsReserved,
		}
		if l == HLSL5 {
			rs.ShaderModel = hlsl.ShaderModel5
		}
		return rs
	}
}
