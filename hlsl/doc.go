// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package hlsl holds the HLSL specific source patches applied to compiled
// programs for the Direct3D compile scripts.
//
// # Shader Model Support
//
// Two shader models are targeted:
//   - SM 3.0: Direct3D 9, combined texture samplers
//   - SM 5.0: Direct3D 11, separate Texture and SamplerState objects
//
// Both get module-level variables marked static (MarkStatic) and a vertex
// output adjusted to GL clip-space conventions (InjectViewportTransform).
//
// # Register Binding
//
// SM 5.0 programs need explicit registers:
//
//	Texture2D    : register(t#)  // Textures
//	SamplerState : register(s#)  // Samplers
//
// AssignRegisters numbers textures in declaration order and gives each
// sampler the index of the texture it is sampled with.
package hlsl
