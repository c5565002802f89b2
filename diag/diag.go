// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package diag collects the non-fatal diagnostics of a conversion.
//
// Fatal conditions are returned as errors. Everything else is recorded in a
// List so a conversion can finish its traversal and still report failure.
package diag

import (
	"fmt"
	"io"
)

// Severity classifies a diagnostic.
type Severity uint8

const (
	// Warning diagnostics do not fail the conversion.
	Warning Severity = iota

	// Error diagnostics fail the conversion.
	Error
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// Diagnostic is one recorded message.
type Diagnostic struct {
	Severity Severity
	Message  string
}

// String formats the diagnostic the way it is printed to users.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// List accumulates diagnostics. The zero value is ready to use.
type List struct {
	items []Diagnostic
}

// Errorf records an error diagnostic.
func (l *List) Errorf(format string, args ...any) {
	l.items = append(l.items, Diagnostic{Severity: Error, Message: fmt.Sprintf(format, args...)})
}

// Warnf records a warning diagnostic.
func (l *List) Warnf(format string, args ...any) {
	l.items = append(l.items, Diagnostic{Severity: Warning, Message: fmt.Sprintf(format, args...)})
}

// Failed reports whether any error diagnostic was recorded.
func (l *List) Failed() bool {
	for _, d := range l.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Items returns the recorded diagnostics in order.
func (l *List) Items() []Diagnostic {
	return l.items
}

// Len returns the number of recorded diagnostics.
func (l *List) Len() int {
	return len(l.items)
}

// Print writes one line per diagnostic to w.
func (l *List) Print(w io.Writer) {
	for _, d := range l.items {
		fmt.Fprintln(w, d.String())
	}
}
