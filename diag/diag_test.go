// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package diag

import (
	"bytes"
	"testing"
)

func TestList(t *testing.T) {
	var l List
	if l.Failed() {
		t.Error("empty list should not fail")
	}

	l.Warnf("sampler %s: odd state", "s0")
	if l.Failed() {
		t.Error("warnings should not fail the list")
	}

	l.Errorf("%s : No fragment program.", "t0")
	if !l.Failed() {
		t.Error("errors should fail the list")
	}
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}

	var buf bytes.Buffer
	l.Print(&buf)
	want := "Warning: sampler s0: odd state\nError: t0 : No fragment program.\n"
	if buf.String() != want {
		t.Errorf("Print() = %q, want %q", buf.String(), want)
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{Warning, "Warning"},
		{Error, "Error"},
		{Severity(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
