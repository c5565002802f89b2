// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package srcutil holds the whole-word text helpers shared by the shader
// source rewriters.
package srcutil

import (
	"regexp"
	"strings"
)

// WordPattern matches name as a whole word.
func WordPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
}

// ContainsWord reports whether name occurs in text as a whole word.
func ContainsWord(text, name string) bool {
	if !strings.Contains(text, name) {
		return false
	}
	return WordPattern(name).MatchString(text)
}

// CountWord counts the whole-word occurrences of name in text.
func CountWord(text, name string) int {
	if !strings.Contains(text, name) {
		return 0
	}
	return len(WordPattern(name).FindAllStringIndex(text, -1))
}

// ReplaceWord replaces every whole-word occurrence of old with repl.
func ReplaceWord(text, old, repl string) string {
	if !strings.Contains(text, old) {
		return text
	}
	return WordPattern(old).ReplaceAllLiteralString(text, repl)
}

// IsIdentByte reports whether c can appear in an identifier.
func IsIdentByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

// MatchingParen returns the index of the parenthesis closing the one at
// open, or -1 when it is unbalanced.
func MatchingParen(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
