// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package manifest

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/cockroachdb/errors"
)

func writeSample(w *Writer) {
	w.String("version", "1")
	w.BeginObject("p")
	w.BeginList("values")
	w.Float("", 1)
	w.Float("", 0.5)
	w.EndArray()
	w.EndObject()
	w.BeginArray("t")
	w.BeginObject("")
	w.EndObject()
	w.EndArray()
}

func TestWriterCompact(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 0)
	writeSample(w)
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := `{"version":"1","p":{"values":[1,0.5]},"t":[{}]}`
	if buf.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriterIndented(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 2)
	writeSample(w)
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := "{\n" +
		"  \"version\": \"1\",\n" +
		"  \"p\": {\n" +
		"    \"values\": [1, 0.5]\n" +
		"  },\n" +
		"  \"t\": [\n" +
		"    {}\n" +
		"  ]\n" +
		"}\n"
	if buf.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriterEscaping(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 0)
	w.String("code", "if(a<b&&c){x=\"y\";}\n")
	w.Int("n", -3)
	w.Bool("b", true)
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	var got struct {
		Code string `json:"code"`
		N    int    `json:"n"`
		B    bool   `json:"b"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if got.Code != "if(a<b&&c){x=\"y\";}\n" || got.N != -3 || !got.B {
		t.Errorf("decoded = %+v", got)
	}
	for _, escaped := range []string{`\u003c`, `\u0026`} {
		if bytes.Contains(buf.Bytes(), []byte(escaped)) {
			t.Errorf("output is HTML escaped (%s): %s", escaped, buf.String())
		}
	}
	if !bytes.Contains(buf.Bytes(), []byte(`if(a<b&&c)`)) {
		t.Errorf("code not written verbatim: %s", buf.String())
	}
}

func TestWriterNesting(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *Writer)
	}{
		{"unclosed_object", func(w *Writer) { w.BeginObject("a") }},
		{"array_closed_as_object", func(w *Writer) { w.BeginArray("a"); w.EndObject() }},
		{"object_closed_as_array", func(w *Writer) { w.BeginObject("a"); w.EndArray() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf, 0)
			tt.write(w)
			err := w.Close()
			if !errors.Is(err, ErrNesting) {
				t.Errorf("Close() error = %v, want ErrNesting", err)
			}
		})
	}
}

func TestWriterRejectsNaN(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 0)
	w.Float("x", math.NaN())
	if w.Err() == nil {
		t.Fatal("expected error for NaN")
	}
	if err := w.Close(); err == nil {
		t.Error("Close() should report the sticky error")
	}
}
