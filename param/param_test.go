// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package param

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/gogpu/cgfx2json/effect"
	"github.com/gogpu/cgfx2json/manifest"
)

func render(t *testing.T, emit func(w *manifest.Writer)) string {
	t.Helper()
	var buf bytes.Buffer
	w := manifest.NewWriter(&buf, 0)
	emit(w)
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return buf.String()
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name  string
		param effect.Parameter
		want  string
	}{
		{
			name:  "matrix_without_defaults",
			param: effect.Parameter{Name: "wvp", BaseType: "float", Rows: 4, Columns: 4, Values: make([]float64, 16)},
			want:  `{"wvp":{"type":"float","rows":4,"columns":4}}`,
		},
		{
			name:  "vector_with_defaults",
			param: effect.Parameter{Name: "color", BaseType: "float", Rows: 1, Columns: 4, Values: []float64{1, 0.5, 0, 1}},
			want:  `{"color":{"type":"float","columns":4,"values":[1,0.5,0,1]}}`,
		},
		{
			name:  "scalar",
			param: effect.Parameter{Name: "alpha", BaseType: "float", Rows: 1, Columns: 1, Values: []float64{0.25}},
			want:  `{"alpha":{"type":"float","values":[0.25]}}`,
		},
		{
			name:  "array_multiplies_rows",
			param: effect.Parameter{Name: "bones", BaseType: "float", Rows: 3, Columns: 4, ArraySize: 10},
			want:  `{"bones":{"type":"float","rows":30,"columns":4}}`,
		},
		{
			name:  "int_values",
			param: effect.Parameter{Name: "count", BaseType: "int", Rows: 1, Columns: 2, Values: []float64{0, 3}},
			want:  `{"count":{"type":"int","columns":2,"values":[0,3]}}`,
		},
		{
			name:  "bool_values_are_numbers",
			param: effect.Parameter{Name: "flag", BaseType: "bool", Rows: 1, Columns: 1, Values: []float64{1}},
			want:  `{"flag":{"type":"bool","values":[1]}}`,
		},
		{
			name:  "sampler_has_no_values",
			param: effect.Parameter{Name: "diffuse", BaseType: "sampler2D", Rows: 1, Columns: 1, Values: []float64{7}},
			want:  `{"diffuse":{"type":"sampler2D"}}`,
		},
		{
			name:  "extra_values_truncated",
			param: effect.Parameter{Name: "v", BaseType: "float", Rows: 1, Columns: 2, Values: []float64{1, 2, 3}},
			want:  `{"v":{"type":"float","columns":2,"values":[1,2]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, func(w *manifest.Writer) { Write(w, &tt.param) })
			if got != tt.want {
				t.Errorf("Write() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestWriteState(t *testing.T) {
	tests := []struct {
		name  string
		state effect.StateAssignment
		want  string
	}{
		{"bool", effect.BoolState("DepthTestEnable", true), `{"DepthTestEnable":true}`},
		{"int", effect.IntState("DepthFunc", 515), `{"DepthFunc":515}`},
		{"int_vector", effect.IntState("BlendFunc", 770, 771), `{"BlendFunc":[770,771]}`},
		{"float", effect.FloatState("LineWidth", 1.5), `{"LineWidth":1.5}`},
		{"float_vector", effect.FloatState("PolygonOffset", 1, 2), `{"PolygonOffset":[1,2]}`},
		{"bool_vector", effect.BoolState("ColorMask", true, true, false, true), `{"ColorMask":[true,true,false,true]}`},
		{"string", effect.StringState("Name", "x"), `{"Name":"x"}`},
		{"program_skipped", effect.ProgramState("VertexProgram", "vp"), `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, func(w *manifest.Writer) {
				if err := WriteState(w, tt.state); err != nil {
					t.Errorf("WriteState() error = %v", err)
				}
			})
			if got != tt.want {
				t.Errorf("WriteState() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWriteStateUnexpected(t *testing.T) {
	bad := []effect.StateAssignment{
		{Name: "Empty", Value: effect.StateValue{Kind: effect.KindFloat}},
		{Name: "Wide", Value: effect.StateValue{Kind: effect.KindInt, Numbers: make([]float64, 5)}},
		{Name: "Odd", Value: effect.StateValue{Kind: effect.ValueKind(42)}},
	}
	for _, s := range bad {
		render(t, func(w *manifest.Writer) {
			err := WriteState(w, s)
			if !errors.Is(err, ErrUnexpectedState) {
				t.Errorf("WriteState(%s) error = %v, want ErrUnexpectedState", s.Name, err)
			}
		})
	}
}

func TestWriteSampler(t *testing.T) {
	p := &effect.Parameter{
		Name: "diffuse",
		SamplerStates: []effect.StateAssignment{
			effect.IntState("MinFilter", 9729),
			{Name: "Broken", Value: effect.StateValue{Kind: effect.ValueKind(42)}},
			effect.IntState("WrapS", 33071),
		},
	}

	var err error
	got := render(t, func(w *manifest.Writer) { err = WriteSampler(w, p) })
	if want := `{"diffuse":{"MinFilter":9729,"WrapS":33071}}`; got != want {
		t.Errorf("WriteSampler() = %s, want %s", got, want)
	}
	if !errors.Is(err, ErrUnexpectedState) {
		t.Errorf("WriteSampler() error = %v, want ErrUnexpectedState", err)
	}
}
