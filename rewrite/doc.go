// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package rewrite turns compiled program text into the code embedded in
// the manifest.
//
// The compiler output is not parsed. Every step is a textual patch matched
// with regular expressions, so the order of the steps is part of the
// output format:
//
//  1. minify (assembly drops its '#' comments first)
//  2. delete unused struct declarations
//  3. normalize float literals printed in scientific notation
//  4. standardize vendor extension names and drop #version
//  5. rename canonical uniform names to their compiled names
//  6. vertex GLSL: materialize fixed-function attributes
//  7. drop a trailing empty return
//  8. language pass: GLSL preamble and varyings, HLSL statics, viewport
//     transform and registers
//
// Each Language maps to a RuleSet that switches the steps on or off.
package rewrite
