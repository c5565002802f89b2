// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command cgfx2json converts CgFX effects to JSON manifests.
//
// Usage:
//
//	cgfx2json [options] -i <input> -o <output>
//
// Examples:
//
//	cgfx2json -i lambert.cgfx -o lambert.json          # Portable GLSL
//	cgfx2json --es -j 2 -i lambert.cgfx -o out.json     # GLSL ES, indented
//	cgfx2json -M -MF lambert.d -i lambert.cgfx          # Dependencies only
//	cgfx2json --hlsl5 dxbc,./fxc.sh -i a.cgfx -o a.json # Embed HLSL binaries
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/gogpu/cgfx2json"
	"github.com/gogpu/cgfx2json/binary"
	"github.com/gogpu/cgfx2json/deps"
	"github.com/gogpu/cgfx2json/effect"
	"github.com/gogpu/cgfx2json/rewrite"
)

const versionString = "cgfx2json " + cgfx2json.Version

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// targetList collects repeated "prop,script" flag values.
type targetList []string

func (l *targetList) String() string { return strings.Join(*l, " ") }

func (l *targetList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type config struct {
	input, output string
	depsMode      bool
	depsFile      string
	indent        int
	asm, es       bool
	frontend      string
	includeDirs   targetList
	hlsl3, hlsl5  targetList
	binaries      targetList
	verbose       bool
	version       bool
}

func newFlagSet(cfg *config, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("cgfx2json", flag.ContinueOnError)
	fs.SetOutput(stderr)

	for _, name := range []string{"input", "i"} {
		fs.StringVar(&cfg.input, name, "", "source `FILE` to process")
	}
	for _, name := range []string{"output", "o"} {
		fs.StringVar(&cfg.output, name, "", "output `FILE` to write to")
	}
	fs.BoolVar(&cfg.depsMode, "M", false, "output dependencies")
	fs.StringVar(&cfg.depsFile, "MF", "", "dependencies output to `FILE`")
	for _, name := range []string{"json_indent", "j"} {
		fs.IntVar(&cfg.indent, name, 0, "json output pretty printing indent `SIZE`")
	}
	fs.BoolVar(&cfg.asm, "asm", false, "generate ASM code instead of GLSL")
	fs.BoolVar(&cfg.es, "es", false, "generate GLSL ES code instead of portable GLSL")
	fs.StringVar(&cfg.frontend, "frontend", effect.DefaultFrontend, "effect front-end `BIN`")
	fs.Var(&cfg.includeDirs, "I", "add include `DIR` for the front-end (repeatable)")
	fs.Var(&cfg.hlsl3, "hlsl3", "compile HLSL SM3 with `prop,script` (repeatable)")
	fs.Var(&cfg.hlsl5, "hlsl5", "compile HLSL SM5 with `prop,script` (repeatable)")
	fs.Var(&cfg.binaries, "binary", "compile generated code with `prop,script` (repeatable)")
	for _, name := range []string{"verbose", "v"} {
		fs.BoolVar(&cfg.verbose, name, false, "verbose output")
	}
	fs.BoolVar(&cfg.version, "version", false, "show program's version number and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: cgfx2json [options] -i <input> -o <output>\n\n")
		fmt.Fprintf(stderr, "CgFX to json converter.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	return fs
}

func run(args []string, stdout, stderr io.Writer) int {
	var cfg config
	fs := newFlagSet(&cfg, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if cfg.depsFile != "" {
		cfg.depsMode = true
	}

	if cfg.version {
		return printVersion(cfg.output, stdout, stderr)
	}
	if cfg.input == "" || (cfg.output == "" && !cfg.depsMode) {
		fs.Usage()
		return 1
	}
	if cfg.indent < 0 {
		fmt.Fprintln(stderr, "Error: Indentation size must be greater than or equal to zero.")
		return 1
	}

	if cfg.verbose {
		cgfx2json.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
		defer cgfx2json.SetLogger(nil)
	}

	opts, err := options(&cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	c := cgfx2json.NewConverter(opts)
	ctx := context.Background()

	if cfg.depsMode {
		if err := writeDependencies(ctx, c, cfg.depsFile, stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	err = c.Convert(ctx)
	c.Diagnostics().Print(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if c.Diagnostics().Failed() {
		return 1
	}
	return 0
}

func options(cfg *config) (cgfx2json.Options, error) {
	opts := cgfx2json.DefaultOptions()
	opts.Input = cfg.input
	opts.Output = cfg.output
	opts.Indent = cfg.indent

	switch {
	case cfg.asm:
		opts.Profile = effect.ProfileASM
	case cfg.es:
		opts.Profile = effect.ProfileGLSLES
	}

	if strings.EqualFold(fileExt(cfg.input), ".json") {
		opts.Loader = effect.DumpLoader{}
	} else {
		opts.Loader = &effect.Frontend{Bin: cfg.frontend, IncludeDirs: cfg.includeDirs}
	}

	groups := []struct {
		values targetList
		lang   rewrite.Language
	}{
		{cfg.binaries, opts.Language()},
		{cfg.hlsl3, rewrite.HLSL3},
		{cfg.hlsl5, rewrite.HLSL5},
	}
	for _, g := range groups {
		for _, v := range g.values {
			t, err := binary.ParseTarget(v, g.lang)
			if err != nil {
				return opts, err
			}
			opts.Targets = append(opts.Targets, t)
		}
	}
	return opts, nil
}

func fileExt(path string) string {
	if i := strings.LastIndexAny(path, `./\`); i >= 0 && path[i] == '.' {
		return path[i:]
	}
	return ""
}

func writeDependencies(ctx context.Context, c *cgfx2json.Converter, depsFile string, stdout io.Writer) error {
	includes, err := c.Dependencies(ctx)
	if err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to calculate working directory")
	}
	if depsFile != "" {
		return deps.WriteFile(depsFile, cwd, includes)
	}
	return deps.Write(stdout, cwd, includes)
}

// printVersion prints the version, or writes it to output unless the file
// already holds it.
func printVersion(output string, stdout, stderr io.Writer) int {
	if output == "" {
		fmt.Fprintln(stdout, versionString)
		return 0
	}
	if old, err := os.ReadFile(output); err == nil && string(old) == versionString {
		return 0
	}
	if err := os.WriteFile(output, []byte(versionString), 0o644); err != nil {
		fmt.Fprintf(stderr, "Failed to write version information to %s\n", output)
		return 1
	}
	return 0
}
