// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package deps lists the build dependencies of an effect: the files the
// front-end opened while compiling it.
package deps

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"
)

// List returns includes without duplicates, sorted. Two paths naming the
// same file name are duplicates; the first one is kept.
func List(includes []string) []string {
	seen := make(map[string]struct{}, len(includes))
	out := make([]string, 0, len(includes))
	for _, p := range includes {
		base := filepath.Base(filepath.FromSlash(p))
		if _, ok := seen[base]; ok {
			continue
		}
		seen[base] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Resolve returns path joined to dir when that file exists, and path
// unchanged otherwise.
func Resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	joined := filepath.Join(dir, path)
	if _, err := os.Stat(joined); err == nil {
		return joined
	}
	return path
}

// Write prints the dependencies of includes to w, one per line, resolved
// against dir.
func Write(w io.Writer, dir string, includes []string) error {
	for _, p := range List(includes) {
		if _, err := io.WriteString(w, Resolve(dir, p)+"\n"); err != nil {
			return errors.Wrap(err, "write dependencies")
		}
	}
	return nil
}

// WriteFile writes the dependency list to the file at path.
func WriteFile(path, dir string, includes []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create dependency file")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close dependency file")
		}
	}()
	return Write(f, dir, includes)
}
