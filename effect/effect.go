// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package effect

import "context"

// Domain is a shader pipeline stage.
type Domain uint8

// Pipeline domains in manifest enumeration order.
const (
	Vertex Domain = iota
	Fragment
	Geometry
	TessellationControl
	TessellationEvaluation

	// DomainCount is the number of pipeline domains.
	DomainCount
)

// Domains lists every domain in enumeration order.
var Domains = [DomainCount]Domain{
	Vertex,
	Fragment,
	Geometry,
	TessellationControl,
	TessellationEvaluation,
}

// String returns the domain name used in the manifest "type" field.
func (d Domain) String() string {
	switch d {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	case Geometry:
		return "geometry"
	case TessellationControl:
		return "tessellation_control"
	case TessellationEvaluation:
		return "tessellation_evaluation"
	default:
		return "unknown"
	}
}

// ParseDomain converts a manifest domain name back to a Domain.
func ParseDomain(s string) (Domain, bool) {
	for _, d := range Domains {
		if d.String() == s {
			return d, true
		}
	}
	return 0, false
}

// Variability tells whether a parameter is per-draw or per-vertex.
type Variability uint8

const (
	Uniform Variability = iota
	Varying
	Constant
)

// Direction is the data-flow direction of a program parameter.
type Direction uint8

const (
	In Direction = iota
	Out
	InOut
)

// Base type names with special handling.
const (
	BaseFloat = "float"
	BaseInt   = "int"
	BaseBool  = "bool"
)

// Parameter is a compiled effect or program parameter.
type Parameter struct {
	Name     string
	Semantic string

	// BaseType is the scalar type name ("float", "int", "bool") or the
	// compiler's type name for everything else ("sampler2D", "struct").
	BaseType string

	Rows    int
	Columns int

	// ArraySize is the total element count of an array parameter,
	// 0 when the parameter is not an array.
	ArraySize int

	Variability Variability
	Direction   Direction

	// Values holds default values, row-major.
	Values []float64

	// Used reports whether the owning program references the parameter.
	Used bool

	SamplerStates []StateAssignment
}

// Program is one compiled program. Programs are immutable.
type Program struct {
	Domain     Domain
	EntryPoint string
	Source     string

	// Parameters lists global parameters first, then program parameters.
	Parameters []*Parameter

	// Inputs lists the leaf parameters of the entry point.
	Inputs []*Parameter
}

// Pass is one draw configuration.
type Pass struct {
	Name     string
	Programs [DomainCount]*Program
	States   []StateAssignment
}

// Program returns the pass program for d, or nil.
func (p *Pass) Program(d Domain) *Program {
	if d >= DomainCount {
		return nil
	}
	return p.Programs[d]
}

// Technique is a named sequence of passes.
type Technique struct {
	Name   string
	Passes []*Pass
}

// Effect is a compiled effect as produced by the front-end.
type Effect struct {
	Parameters []*Parameter
	Techniques []*Technique

	// Programs is the pool of compiled programs. Entries sharing an entry
	// point are the same program; the first one wins.
	Programs []*Program

	// Includes lists the files opened while compiling the effect.
	Includes []string
}

// UniquePrograms returns the program pool deduplicated by entry point,
// in pool order.
func (e *Effect) UniquePrograms() []*Program {
	seen := make(map[string]struct{}, len(e.Programs))
	out := make([]*Program, 0, len(e.Programs))
	for _, p := range e.Programs {
		if _, ok := seen[p.EntryPoint]; ok {
			continue
		}
		seen[p.EntryPoint] = struct{}{}
		out = append(out, p)
	}
	return out
}

// ProgramByEntryPoint returns the first pool program with the given entry point.
func (e *Effect) ProgramByEntryPoint(entry string) *Program {
	for _, p := range e.Programs {
		if p.EntryPoint == entry {
			return p
		}
	}
	return nil
}

// Loader loads and compiles an effect file for a target profile.
type Loader interface {
	Load(ctx context.Context, path string, profile Profile) (*Effect, error)
}
