// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package binary

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
)

// Runner runs one compile script and returns what it wrote to stdout.
type Runner interface {
	Run(ctx context.Context, script string, job Job) ([]byte, error)
}

// ProcessRunner runs scripts as child processes.
type ProcessRunner struct{}

// Run implements Runner.
func (ProcessRunner) Run(ctx context.Context, script string, job Job) ([]byte, error) {
	cmd := exec.CommandContext(ctx, script, job.Args()...)
	cmd.Stdin = strings.NewReader(job.Code)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, scriptError(err, script, job, stderr.String())
	}
	return stdout.Bytes(), nil
}

// WASMRunner runs WebAssembly scripts built for WASI. Compiled modules are
// cached by path for the lifetime of the runner.
type WASMRunner struct {
	mu       sync.Mutex
	runtime  wazero.Runtime
	compiled map[string]wazero.CompiledModule
}

// NewWASMRunner creates a runtime with WASI preview 1 available.
func NewWASMRunner(ctx context.Context) *WASMRunner {
	r := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, r)
	return &WASMRunner{runtime: r, compiled: make(map[string]wazero.CompiledModule)}
}

// Close releases the runtime and every compiled module.
func (w *WASMRunner) Close(ctx context.Context) error {
	return w.runtime.Close(ctx)
}

func (w *WASMRunner) module(ctx context.Context, script string) (wazero.CompiledModule, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if m, ok := w.compiled[script]; ok {
		return m, nil
	}
	code, err := os.ReadFile(script)
	if err != nil {
		return nil, errors.Wrap(err, "read wasm script")
	}
	m, err := w.runtime.CompileModule(ctx, code)
	if err != nil {
		return nil, errors.Wrapf(err, "compile wasm script %s", script)
	}
	w.compiled[script] = m
	return m, nil
}

// Run implements Runner. The module's _start function is the entry point;
// exiting with status zero counts as success.
func (w *WASMRunner) Run(ctx context.Context, script string, job Job) ([]byte, error) {
	compiled, err := w.module(ctx, script)
	if err != nil {
		return nil, errors.Mark(err, ErrScriptFailed)
	}

	var stdout, stderr bytes.Buffer
	config := wazero.NewModuleConfig().
		WithName("").
		WithArgs(append([]string{filepath.Base(script)}, job.Args()...)...).
		WithStdin(strings.NewReader(job.Code)).
		WithStdout(&stdout).
		WithStderr(&stderr)

	mod, err := w.runtime.InstantiateModule(ctx, compiled, config)
	if mod != nil {
		defer mod.Close(ctx)
	}
	if err != nil {
		var exit *sys.ExitError
		if !errors.As(err, &exit) || exit.ExitCode() != 0 {
			return nil, scriptError(err, script, job, stderr.String())
		}
	}
	return stdout.Bytes(), nil
}

func scriptError(err error, script string, job Job, stderr string) error {
	cmd := script + " " + strings.Join(job.Args(), " ")
	if msg := strings.TrimSpace(stderr); msg != "" {
		err = errors.Wrapf(err, "%s: %s", cmd, msg)
	} else {
		err = errors.Wrap(err, cmd)
	}
	return errors.Mark(err, ErrScriptFailed)
}
