// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package effect models a compiled shader effect: techniques made of passes,
// passes binding one program per pipeline domain, and the effect's
// parameters.
//
// Effects are produced by an external effect compiler. A Loader wraps it:
// Frontend runs the compiler binary and decodes the effect dump it prints,
// DumpLoader reads a dump from disk. Effect values are read-only once loaded.
package effect
