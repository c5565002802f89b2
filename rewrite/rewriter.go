// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package rewrite

import (
	"log/slog"

	"github.com/gogpu/cgfx2json/effect"
	"github.com/gogpu/cgfx2json/glsl"
	"github.com/gogpu/cgfx2json/hlsl"
	"github.com/gogpu/cgfx2json/internal/jsmin"
	"github.com/gogpu/cgfx2json/internal/srcutil"
	"github.com/gogpu/cgfx2json/uniform"
)

// Program is the input of one rewrite.
type Program struct {
	Source     string
	Stage      effect.Domain
	EntryPoint string
}

// Rewriter turns compiled program text into the code stored in the
// manifest. The zero value is ready to use.
type Rewriter struct {
	// Minify strips comments and whitespace. Nil means jsmin.Minify.
	Minify func(string) (string, error)

	// Logger receives a debug record when minification fails. Nil
	// disables logging.
	Logger *slog.Logger
}

func (r *Rewriter) minify(text string) string {
	minify := r.Minify
	if minify == nil {
		minify = jsmin.Minify
	}
	out, err := minify(text)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Debug("minify failed, keeping text", "error", err)
		}
		return text
	}
	return out
}

// Rewrite runs the rewrite pipeline of lang over p and returns the final
// code. Uniform names are taken from table, which is only read.
//
// The steps run in a fixed order since later ones match the output of
// earlier ones: minify, struct pruning, number normalization, vendor
// fixups, uniform renaming, attribute materialization, dead return
// stripping and the language specific final pass.
func (r *Rewriter) Rewrite(p Program, lang Language, table *uniform.Table) string {
	rs := lang.Rules()
	text := p.Source

	if rs.StripDirectives {
		text = StripAssemblyComments(text)
	}
	text = r.minify(text)

	if rs.PruneStructs {
		text = PruneStructs(text)
	}
	if rs.NormalizeNumbers {
		text = NormalizeNumbers(text)
	}
	if rs.VendorFixups {
		text = FixVendorExtensions(text)
	}
	if rs.RenameUniforms && table != nil {
		text = RenameUniforms(text, table, rs.IsReserved)
	}
	if rs.Attributes && p.Stage == effect.Vertex {
		text = glsl.MaterializeAttributes(text)
	}
	if rs.StripDeadReturn {
		text = StripDeadReturn(text)
	}

	switch rs.Target {
	case TargetGLSL:
		text = glsl.Finish(text, rs.Dialect)
	case TargetHLSL:
		text = finishHLSL(text, p, rs.ShaderModel, table)
	}
	return text
}

// RenameUniforms replaces every canonical uniform name in text with its
// short name. Pairs where either name is reserved are left alone.
func RenameUniforms(text string, table *uniform.Table, isReserved func(string) bool) string {
	for _, pair := range table.Pairs() {
		if isReserved != nil && (isReserved(pair.Canonical) || isReserved(pair.Short)) {
			continue
		}
		text = srcutil.ReplaceWord(text, pair.Canonical, pair.Short)
	}
	return text
}

func finishHLSL(text string, p Program, sm hlsl.ShaderModel, table *uniform.Table) string {
	isUniform := func(name string) bool {
		if table == nil {
			return false
		}
		if _, ok := table.Lookup(name); ok {
			return true
		}
		return table.IsShortName(name)
	}
	text = hlsl.MarkStatic(text, isUniform)

	if sm.HasSeparateSamplers() {
		text = hlsl.AssignRegisters(text)
		switch p.Stage {
		case effect.Vertex:
			text = hlsl.SampleLevelInVertex(text)
		case effect.Fragment:
			if p.EntryPoint != "" {
				text = hlsl.AddDummyPosition(text, p.EntryPoint)
			}
		}
	}

	return hlsl.InjectViewportTransform(text)
}
