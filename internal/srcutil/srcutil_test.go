// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package srcutil

import "testing"

func TestWordHelpers(t *testing.T) {
	text := "float4 color;float4 colorScale;c=color*colorScale+color;"

	if got := CountWord(text, "color"); got != 3 {
		t.Errorf("CountWord(color) = %d, want 3", got)
	}
	if got := CountWord(text, "colorScale"); got != 2 {
		t.Errorf("CountWord(colorScale) = %d, want 2", got)
	}
	if !ContainsWord(text, "c") {
		t.Error("ContainsWord(c) = false, want true")
	}
	if ContainsWord(text, "olor") {
		t.Error("ContainsWord(olor) = true, want false")
	}

	want := "float4 tint;float4 colorScale;c=tint*colorScale+tint;"
	if got := ReplaceWord(text, "color", "tint"); got != want {
		t.Errorf("ReplaceWord() = %q, want %q", got, want)
	}
	if got := ReplaceWord("a$b", "a", "$1"); got != "$1$b" {
		t.Errorf("ReplaceWord() must not expand templates, got %q", got)
	}
}

func TestMatchingParen(t *testing.T) {
	tests := []struct {
		text string
		open int
		want int
	}{
		{"f(a,(b),c)", 1, 9},
		{"f(a,(b),c)", 4, 6},
		{"f(a", 1, -1},
	}
	for _, tt := range tests {
		if got := MatchingParen(tt.text, tt.open); got != tt.want {
			t.Errorf("MatchingParen(%q, %d) = %d, want %d", tt.text, tt.open, got, tt.want)
		}
	}
}
