// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/gogpu/cgfx2json/effect"
)

// ShaderModel represents a Direct3D shader model targeted by compile
// scripts.
type ShaderModel uint8

// Supported shader models.
const (
	// ShaderModel3 is the Direct3D 9 model.
	ShaderModel3 ShaderModel = iota

	// ShaderModel5 is the Direct3D 11 model. It has separate texture and
	// sampler objects bound to explicit registers.
	ShaderModel5
)

// ErrUnsupportedStage is returned for program domains a shader model has
// no profile for.
var ErrUnsupportedStage = errors.New("stage not supported by shader model")

// String returns a human-readable representation of the shader model.
// Example: "SM 3.0", "SM 5.0"
func (sm ShaderModel) String() string {
	return fmt.Sprintf("SM %d.0", sm.Major())
}

// Major returns the major version number.
func (sm ShaderModel) Major() uint8 {
	if sm == ShaderModel5 {
		return 5
	}
	return 3
}

// ProfileSuffix returns the shader profile suffix for this model.
// Example: "3_0", "5_0"
func (sm ShaderModel) ProfileSuffix() string {
	return fmt.Sprintf("%d_0", sm.Major())
}

// Profile returns the compiler profile for programs of domain d, such as
// "vs_3_0" or "ps_5_0".
func (sm ShaderModel) Profile(d effect.Domain) (string, error) {
	var prefix string
	switch d {
	case effect.Vertex:
		prefix = "vs"
	case effect.Fragment:
		prefix = "ps"
	case effect.Geometry:
		prefix = "gs"
	case effect.TessellationControl:
		prefix = "hs"
	case effect.TessellationEvaluation:
		prefix = "ds"
	default:
		return "", errors.Wrapf(ErrUnsupportedStage, "%s: domain %d", sm, d)
	}
	if sm == ShaderModel3 && d != effect.Vertex && d != effect.Fragment {
		return "", errors.Wrapf(ErrUnsupportedStage, "%s: %s", sm, d)
	}
	return prefix + "_" + sm.ProfileSuffix(), nil
}

// HasSeparateSamplers reports whether textures and samplers are distinct
// objects with their own registers.
func (sm ShaderModel) HasSeparateSamplers() bool {
	return sm >= ShaderModel5
}
