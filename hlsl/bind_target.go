// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// RegisterType represents the HLSL register type.
type RegisterType uint8

const (
	// RegisterTypeT is for textures and shader resource views.
	RegisterTypeT RegisterType = iota

	// RegisterTypeS is for samplers.
	RegisterTypeS
)

// String returns the single-character register prefix.
func (rt RegisterType) String() string {
	if rt == RegisterTypeS {
		return "s"
	}
	return "t"
}

// BindTarget specifies the register a resource is bound to.
type BindTarget struct {
	Type     RegisterType
	Register uint32
}

// String returns the binding in declaration syntax, e.g. "register(t0)".
func (bt BindTarget) String() string {
	return "register(" + bt.Type.String() + strconv.FormatUint(uint64(bt.Register), 10) + ")"
}

var (
	texturePattern = regexp.MustCompile(`\b(?:Texture1D|Texture1DArray|Texture2D|Texture2DArray|Texture2DMS|Texture3D|TextureCube|TextureCubeArray)(?:\s*<[^>]*>)?\s+(\w+)\s*;`)
	samplerPattern = regexp.MustCompile(`\b(?:SamplerState|SamplerComparisonState)\s+(\w+)\s*;`)
	samplePattern  = regexp.MustCompile(`\b(\w+)\s*\.\s*(?:Sample\w*|Gather\w*)\s*\(\s*(\w+)\b`)
)

// BindingMap holds the registers assigned to the resources of a program.
type BindingMap map[string]BindTarget

// Bindings assigns registers to the unbound texture and sampler objects
// declared in text. Textures get t0, t1, ... in declaration order. A
// sampler used with a texture gets the index of that texture so pairs line
// up; other samplers take the next unused index.
func Bindings(text string) BindingMap {
	m := make(BindingMap)

	var next uint32
	for _, match := range texturePattern.FindAllStringSubmatch(text, -1) {
		name := match[1]
		if _, ok := m[name]; ok {
			continue
		}
		m[name] = BindTarget{Type: RegisterTypeT, Register: next}
		next++
	}

	// The first texture a sampler is used with decides its register.
	pairs := make(map[string]string)
	for _, match := range samplePattern.FindAllStringSubmatch(text, -1) {
		texture, sampler := match[1], match[2]
		if _, ok := pairs[sampler]; !ok {
			pairs[sampler] = texture
		}
	}

	used := make(map[uint32]bool)
	var unpaired []string
	for _, match := range samplerPattern.FindAllStringSubmatch(text, -1) {
		name := match[1]
		if _, ok := m[name]; ok {
			continue
		}
		if tex, ok := m[pairs[name]]; ok && tex.Type == RegisterTypeT && !used[tex.Register] {
			m[name] = BindTarget{Type: RegisterTypeS, Register: tex.Register}
			used[tex.Register] = true
			continue
		}
		unpaired = append(unpaired, name)
	}

	var free uint32
	for _, name := range unpaired {
		for used[free] {
			free++
		}
		m[name] = BindTarget{Type: RegisterTypeS, Register: free}
		used[free] = true
	}
	return m
}

// Names returns the bound resource names sorted by register type and index.
func (m BindingMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := m[names[i]], m[names[j]]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.Register < b.Register
	})
	return names
}

// AssignRegisters adds an explicit register binding to every texture and
// sampler object declared in text without one.
func AssignRegisters(text string) string {
	m := Bindings(text)
	if len(m) == 0 {
		return text
	}
	bind := func(decl string, name string) string {
		bt, ok := m[name]
		if !ok {
			return decl
		}
		body := strings.TrimRight(decl[:len(decl)-1], " \t\r\n")
		return body + ":" + bt.String() + ";"
	}
	text = replaceDecls(text, texturePattern, bind)
	return replaceDecls(text, samplerPattern, bind)
}

func replaceDecls(text string, re *regexp.Regexp, bind func(decl, name string) string) string {
	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(text[last:loc[0]])
		b.WriteString(bind(text[loc[0]:loc[1]], text[loc[2]:loc[3]]))
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}
