// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package manifest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrNesting is recorded when scopes are closed out of order.
var ErrNesting = errors.New("manifest: scopes closed out of order")

type scopeKind uint8

const (
	scopeObject scopeKind = iota
	scopeArray
	scopeList // array whose elements stay on one line
)

type scope struct {
	kind  scopeKind
	count int
}

// Writer streams a JSON document. The root object is opened by NewWriter
// and closed by Close. Keys are ignored for elements of arrays.
//
// The first error is sticky: later calls are no-ops and Err/Close report it.
type Writer struct {
	out    *bufio.Writer
	indent int
	stack  []scope
	err    error
}

// NewWriter returns a Writer emitting to w. An indent of 0 produces compact
// output; a positive indent pretty-prints with that many spaces per level.
func NewWriter(w io.Writer, indent int) *Writer {
	if indent < 0 {
		indent = 0
	}
	mw := &Writer{out: bufio.NewWriter(w), indent: indent}
	mw.raw("{")
	mw.stack = append(mw.stack, scope{kind: scopeObject})
	return mw
}

// Err returns the first error encountered.
func (w *Writer) Err() error { return w.err }

// Depth returns the number of open scopes, including the root object.
func (w *Writer) Depth() int { return len(w.stack) }

// BeginObject opens an object value.
func (w *Writer) BeginObject(key string) {
	w.open(key, scopeObject, "{")
}

// EndObject closes the innermost scope, which must be an object.
func (w *Writer) EndObject() {
	w.close(scopeObject, "}")
}

// BeginArray opens an array whose elements go on their own lines.
func (w *Writer) BeginArray(key string) {
	w.open(key, scopeArray, "[")
}

// BeginList opens an array of scalars written on a single line.
func (w *Writer) BeginList(key string) {
	w.open(key, scopeList, "[")
}

// EndArray closes the innermost scope, which must be an array or list.
func (w *Writer) EndArray() {
	if w.err != nil {
		return
	}
	if len(w.stack) == 0 {
		w.err = ErrNesting
		return
	}
	kind := w.stack[len(w.stack)-1].kind
	if kind == scopeObject {
		w.err = errors.Wrap(ErrNesting, "EndArray on an object")
		return
	}
	w.close(kind, "]")
}

// String writes a string value.
func (w *Writer) String(key, value string) {
	w.element(key)
	w.raw(quote(value))
}

// Int writes an integer value.
func (w *Writer) Int(key string, value int) {
	w.element(key)
	w.raw(strconv.Itoa(value))
}

// Float writes a floating point value with single precision formatting.
func (w *Writer) Float(key string, value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		if w.err == nil {
			w.err = errors.Newf("manifest: %q: %v is not representable in JSON", key, value)
		}
		return
	}
	w.element(key)
	w.raw(strconv.FormatFloat(value, 'g', -1, 32))
}

// Bool writes a boolean value.
func (w *Writer) Bool(key string, value bool) {
	w.element(key)
	w.raw(strconv.FormatBool(value))
}

// Close closes the root object and flushes. Every scope opened by the
// caller must have been closed.
func (w *Writer) Close() error {
	if w.err == nil && len(w.stack) != 1 {
		w.err = errors.Wrapf(ErrNesting, "%d scopes still open", len(w.stack)-1)
	}
	if w.err != nil {
		return w.err
	}
	w.close(scopeObject, "}")
	if w.indent > 0 {
		w.raw("\n")
	}
	if err := w.out.Flush(); err != nil && w.err == nil {
		w.err = errors.Wrap(err, "manifest: flush")
	}
	return w.err
}

func (w *Writer) open(key string, kind scopeKind, token string) {
	w.element(key)
	w.raw(token)
	if w.err == nil {
		w.stack = append(w.stack, scope{kind: kind})
	}
}

func (w *Writer) close(kind scopeKind, token string) {
	if w.err != nil {
		return
	}
	if len(w.stack) == 0 || w.stack[len(w.stack)-1].kind != kind {
		w.err = ErrNesting
		return
	}
	top := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	if w.indent > 0 && top.kind != scopeList && top.count > 0 {
		w.newline(len(w.stack))
	}
	w.raw(token)
}

// element writes the separator, indentation and key preceding a value.
func (w *Writer) element(key string) {
	if w.err != nil {
		return
	}
	if len(w.stack) == 0 {
		w.err = errors.Wrap(ErrNesting, "value written after Close")
		return
	}
	top := &w.stack[len(w.stack)-1]
	if top.count > 0 {
		w.raw(",")
	}
	switch {
	case top.kind != scopeList && w.indent > 0:
		w.newline(len(w.stack))
	case top.kind == scopeList && top.count > 0 && w.indent > 0:
		w.raw(" ")
	}
	top.count++

	if top.kind == scopeObject {
		w.raw(quote(key))
		if w.indent > 0 {
			w.raw(": ")
		} else {
			w.raw(":")
		}
	}
}

func (w *Writer) newline(depth int) {
	w.raw("\n")
	w.raw(strings.Repeat(" ", depth*w.indent))
}

func (w *Writer) raw(s string) {
	if w.err != nil {
		return
	}
	if _, err := w.out.WriteString(s); err != nil {
		w.err = errors.Wrap(err, "manifest: write")
	}
}

// quote returns s as a JSON string literal. Shader code is full of '<' and
// '&', so HTML escaping is disabled.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
