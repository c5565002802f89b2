// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl holds the GLSL specific source patches applied to compiled
// programs before they are written to the manifest.
//
// Compiled programs still use the fixed-function built-ins of desktop GL.
// The package turns them into code that runs on GL ES 2.0 as well:
//
//   - vertex inputs such as gl_Vertex become generic attributes (ATTR0..ATTR15)
//   - fixed-function varyings such as gl_FrontColor become tz_ varyings
//   - a precision preamble defines TZ_LOWP and default precisions
//
// # Reserved Words
//
// IsReserved lists the GLSL 1.20 and GLSL ES 1.00 reserved words. Uniforms
// whose names collide with one are never renamed.
package glsl
