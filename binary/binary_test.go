// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package binary

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/gogpu/cgfx2json/rewrite"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		value   string
		want    Target
		wantErr bool
	}{
		{"dxbc,./fxc.sh", Target{Property: "dxbc", Script: "./fxc.sh", Language: rewrite.HLSL5}, false},
		{" spirv , tools/glslang.wasm ", Target{Property: "spirv", Script: "tools/glslang.wasm", Language: rewrite.HLSL5}, false},
		{"dxbc", Target{}, true},
		{",script", Target{}, true},
		{"prop,", Target{}, true},
	}
	for _, tt := range tests {
		got, err := ParseTarget(tt.value, rewrite.HLSL5)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTarget) {
				t.Errorf("ParseTarget(%q) error = %v, want ErrInvalidTarget", tt.value, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseTarget(%q) = %+v, %v; want %+v", tt.value, got, err, tt.want)
		}
	}
}

func TestIsWASM(t *testing.T) {
	tests := []struct {
		script string
		want   bool
	}{
		{"compile.wasm", true},
		{"tools/Compile.WASM", true},
		{"compile.sh", false},
		{"dir.wasm/compile", false},
		{"compile", false},
	}
	for _, tt := range tests {
		if got := (Target{Script: tt.script}).IsWASM(); got != tt.want {
			t.Errorf("IsWASM(%q) = %v, want %v", tt.script, got, tt.want)
		}
	}
}

func TestJobArgs(t *testing.T) {
	if got := strings.Join(Job{Type: "vertex", Entry: "vp"}.Args(), " "); got != "vertex vp" {
		t.Errorf("Args() = %q", got)
	}
	if got := strings.Join(Job{Type: "fragment", Entry: "fp", Profile: "ps_5_0"}.Args(), " "); got != "fragment fp ps_5_0" {
		t.Errorf("Args() = %q", got)
	}
}

func TestEmbed(t *testing.T) {
	text := []byte("DXBC listing\n\tmov r0, v0\n")
	if got := Embed(text); got != string(text) {
		t.Errorf("Embed(text) = %q", got)
	}

	bin := []byte{0x44, 0x58, 0x42, 0x43, 0x00, 0xff, 0x10}
	if got := Embed(bin); got != base64.StdEncoding.EncodeToString(bin) {
		t.Errorf("Embed(binary) = %q", got)
	}
}

type fakeRunner struct {
	out  []byte
	err  error
	jobs []Job
}

func (f *fakeRunner) Run(_ context.Context, _ string, job Job) ([]byte, error) {
	f.jobs = append(f.jobs, job)
	return f.out, f.err
}

func TestCompilerDispatch(t *testing.T) {
	process := &fakeRunner{out: []byte("text")}
	wasm := &fakeRunner{out: []byte{0, 1, 2}}
	c := &Compiler{Process: process, WASM: wasm}

	got, err := c.Compile(context.Background(), Target{Property: "p", Script: "a.sh"}, Job{Entry: "vp"})
	if err != nil || got != "text" {
		t.Errorf("Compile(process) = %q, %v", got, err)
	}
	got, err = c.Compile(context.Background(), Target{Property: "p", Script: "a.wasm"}, Job{Entry: "fp"})
	if err != nil || got != "AAEC" {
		t.Errorf("Compile(wasm) = %q, %v", got, err)
	}
	if len(process.jobs) != 1 || len(wasm.jobs) != 1 || wasm.jobs[0].Entry != "fp" {
		t.Errorf("jobs = %v, %v", process.jobs, wasm.jobs)
	}

	failing := &Compiler{Process: &fakeRunner{err: errors.Mark(errors.New("exit 1"), ErrScriptFailed)}}
	if _, err := failing.Compile(context.Background(), Target{Script: "a.sh"}, Job{}); !errors.Is(err, ErrScriptFailed) {
		t.Errorf("Compile() error = %v, want ErrScriptFailed", err)
	}

	if _, err := (&Compiler{}).Compile(context.Background(), Target{Script: "a.wasm"}, Job{}); !errors.Is(err, ErrScriptFailed) {
		t.Errorf("Compile() without runner error = %v", err)
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "compile.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessRunner(t *testing.T) {
	script := writeScript(t, "printf '%s:%s:' \"$1\" \"$2\"\ncat\n")

	out, err := ProcessRunner{}.Run(context.Background(), script, Job{Code: "void main(){}", Type: "vertex", Entry: "vp"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if want := "vertex:vp:void main(){}"; string(out) != want {
		t.Errorf("Run() = %q, want %q", out, want)
	}
}

func TestProcessRunnerFailure(t *testing.T) {
	script := writeScript(t, "echo 'syntax error' >&2\nexit 3\n")

	_, err := ProcessRunner{}.Run(context.Background(), script, Job{Type: "fragment", Entry: "fp"})
	if !errors.Is(err, ErrScriptFailed) {
		t.Fatalf("Run() error = %v, want ErrScriptFailed", err)
	}
	if !strings.Contains(err.Error(), "syntax error") {
		t.Errorf("error %q should carry the script stderr", err)
	}
}

func TestWASMRunnerMissingScript(t *testing.T) {
	ctx := context.Background()
	w := NewWASMRunner(ctx)
	defer w.Close(ctx)

	_, err := w.Run(ctx, filepath.Join(t.TempDir(), "missing.wasm"), Job{})
	if !errors.Is(err, ErrScriptFailed) {
		t.Errorf("Run() error = %v, want ErrScriptFailed", err)
	}
}
