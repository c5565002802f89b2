// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"regexp"
	"strings"

	"github.com/gogpu/cgfx2json/internal/srcutil"
)

// DummyPositionParam is added to fragment entry points that do not read
// the position, so their input signature matches the vertex output.
const DummyPositionParam = "float4 tz_DummyPosition : SV_Position"

var (
	sampleCall        = regexp.MustCompile(`\.Sample\s*\(`)
	svPositionPattern = regexp.MustCompile(`(?i)\bSV_Position\b`)
)

// SampleLevelInVertex rewrites Sample calls to SampleLevel with an explicit
// level of zero, since vertex programs have no derivatives to pick a level.
func SampleLevelInVertex(text string) string {
	locs := sampleCall.FindAllStringIndex(text, -1)
	for i := len(locs) - 1; i >= 0; i-- {
		open := locs[i][1] - 1
		end := srcutil.MatchingParen(text, open)
		if end < 0 {
			continue
		}
		args := text[open+1 : end]
		text = text[:locs[i][0]] + ".SampleLevel(" + args + ",0)" + text[end+1:]
	}
	return text
}

// AddDummyPosition prepends DummyPositionParam to the parameters of the
// entry point definition when it has no SV_Position input.
func AddDummyPosition(text, entry string) string {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(entry) + `\s*\(`)
	for _, loc := range re.FindAllStringIndex(text, -1) {
		open := loc[1] - 1
		end := srcutil.MatchingParen(text, open)
		if end < 0 {
			return text
		}
		if !isDefinition(text[end+1:]) {
			continue
		}
		params := text[open+1 : end]
		if svPositionPattern.MatchString(params) {
			return text
		}
		switch p := strings.TrimSpace(params); p {
		case "", "void":
			params = DummyPositionParam
		default:
			params = DummyPositionParam + "," + params
		}
		return text[:open+1] + params + text[end:]
	}
	return text
}

// isDefinition reports whether rest, the text after a parameter list, opens
// a function body, possibly after a return semantic.
func isDefinition(rest string) bool {
	rest = strings.TrimLeft(rest, " \t\r\n")
	if strings.HasPrefix(rest, ":") {
		brace := strings.IndexAny(rest, "{;")
		return brace >= 0 && rest[brace] == '{'
	}
	return strings.HasPrefix(rest, "{")
}
