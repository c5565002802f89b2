// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package manifest provides the append-only JSON writer used to emit effect
// manifests in a single pass.
//
// Objects and arrays must be opened and closed in strict nesting order.
// Keys are written in call order, so the manifest layout is stable.
package manifest
