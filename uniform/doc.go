// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package uniform ties the uniform names authored in an effect to the names
// the compiler assigned them in each compiled program.
//
// The compiler documents its renaming in annotation comments at the top of
// every program. A Mapper reads them program by program and records the
// result in a shared Table; the SourceRewriter later applies the finished
// table to every program. A canonical name bound to two different compiled
// names is a conflict that aborts the conversion.
package uniform
