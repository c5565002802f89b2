// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cgfx2json

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/gogpu/cgfx2json/binary"
	"github.com/gogpu/cgfx2json/effect"
	"github.com/gogpu/cgfx2json/rewrite"
	"github.com/gogpu/cgfx2json/uniform"
)

const glslVertex = `// glslv output by Cg compiler
//var float4 lightColor :  : _lightColor1 : -1 : 1
uniform vec4 _lightColor1;
void main()
{
    gl_Position = gl_Vertex*_lightColor1.x;
}
`

const glslFragment = `// glslf output by Cg compiler
//var float4 lightColor :  : _lightColor1 : -1 : 1
uniform vec4 _lightColor1;
void main()
{
    gl_FragColor = _lightColor1;
}
`

const hlslVertex = `// hlslv output by Cg compiler
//var float4 lightColor :  : _lightColor1 : -1 : 1
float4 _lightColor1;
float4 main(float4 p : POSITION) : POSITION
{
    return p*_lightColor1.x;
}
`

const hlslFragment = `// hlslf output by Cg compiler
//var float4 lightColor :  : _lightColor1 : -1 : 1
float4 _lightColor1;
float4 main() : COLOR
{
    return _lightColor1;
}
`

// memLoader serves in-memory effects by profile.
type memLoader struct {
	effects map[effect.Profile]*effect.Effect
	loads   int
}

func (l *memLoader) Load(_ context.Context, path string, profile effect.Profile) (*effect.Effect, error) {
	l.loads++
	e, ok := l.effects[profile]
	if !ok {
		return nil, errors.Newf("%s: no effect for %s", path, profile)
	}
	return e, nil
}

func lightColor() *effect.Parameter {
	return &effect.Parameter{
		Name:        "lightColor",
		BaseType:    effect.BaseFloat,
		Rows:        1,
		Columns:     4,
		Variability: effect.Uniform,
		Used:        true,
		Values:      []float64{1, 1, 1, 1},
	}
}

func buildEffect(vertex, fragment string) *effect.Effect {
	vp := &effect.Program{
		Domain:     effect.Vertex,
		EntryPoint: "vp",
		Source:     vertex,
		Parameters: []*effect.Parameter{lightColor()},
		Inputs: []*effect.Parameter{
			{Name: "p", Semantic: "POSITION", Variability: effect.Varying, Direction: effect.In},
		},
	}
	pass := &effect.Pass{
		Name:   "p0",
		States: []effect.StateAssignment{effect.BoolState("DepthTestEnable", true)},
	}
	pass.Programs[effect.Vertex] = vp
	programs := []*effect.Program{vp}

	if fragment != "" {
		fp := &effect.Program{
			Domain:     effect.Fragment,
			EntryPoint: "fp",
			Source:     fragment,
			Parameters: []*effect.Parameter{lightColor()},
		}
		pass.Programs[effect.Fragment] = fp
		programs = append(programs, fp, vp)
	}

	return &effect.Effect{
		Parameters: []*effect.Parameter{lightColor()},
		Techniques: []*effect.Technique{{Name: "lit", Passes: []*effect.Pass{pass}}},
		Programs:   programs,
		Includes:   []string{"common.cgh", "lib/common.cgh", "light.cgh"},
	}
}

func newTestConverter(t *testing.T, loader effect.Loader) (*Converter, string) {
	t.Helper()
	opts := DefaultOptions()
	opts.Input = "shaders/simple.cgfx"
	opts.Output = filepath.Join(t.TempDir(), "simple.json")
	opts.Loader = loader
	return NewConverter(opts), opts.Output
}

type manifestDoc struct {
	Version    string                     `json:"version"`
	Name       string                     `json:"name"`
	Samplers   map[string]json.RawMessage `json:"samplers"`
	Parameters map[string]json.RawMessage `json:"parameters"`
	Techniques map[string][]struct {
		Name       string   `json:"name"`
		Parameters []string `json:"parameters"`
		Semantics  []string `json:"semantics"`
		Programs   []string `json:"programs"`
	} `json:"techniques"`
	Programs map[string]map[string]string `json:"programs"`
}

func readManifest(t *testing.T, path string) (manifestDoc, string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var doc manifestDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("manifest is not valid JSON: %v\n%s", err, data)
	}
	return doc, string(data)
}

func TestConvert(t *testing.T) {
	loader := &memLoader{effects: map[effect.Profile]*effect.Effect{
		effect.ProfileGLSL: buildEffect(glslVertex, glslFragment),
	}}
	c, out := newTestConverter(t, loader)

	if err := c.Convert(context.Background()); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if c.Diagnostics().Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", c.Diagnostics().Items())
	}

	doc, raw := readManifest(t, out)
	if !strings.HasPrefix(raw, `{"version":"1","name":"simple.cgfx","parameters":{"lightColor":`) {
		t.Errorf("manifest starts with %.80s", raw)
	}
	if strings.Contains(raw, `"samplers"`) {
		t.Error("manifest without sampler states must not have a samplers key")
	}

	passes := doc.Techniques["lit"]
	if len(passes) != 1 {
		t.Fatalf("techniques = %+v", doc.Techniques)
	}
	if got := strings.Join(passes[0].Parameters, ","); got != "lightColor,lightColor" {
		t.Errorf("pass parameters = %s", got)
	}
	if got := strings.Join(passes[0].Programs, ","); got != "vp,fp" {
		t.Errorf("pass programs = %s", got)
	}

	if len(doc.Programs) != 2 {
		t.Fatalf("programs = %v", doc.Programs)
	}
	vp := doc.Programs["vp"]
	if vp["type"] != "vertex" {
		t.Errorf("vp type = %q", vp["type"])
	}
	for _, want := range []string{"attribute vec4 ATTR0;", "uniform vec4 _lightColor1;", "gl_Position=ATTR0*_lightColor1.x;"} {
		if !strings.Contains(vp["code"], want) {
			t.Errorf("vp code missing %q:\n%s", want, vp["code"])
		}
	}
	if strings.Contains(vp["code"], "//var") {
		t.Errorf("vp code kept comments:\n%s", vp["code"])
	}
	if doc.Programs["fp"]["type"] != "fragment" {
		t.Errorf("fp = %v", doc.Programs["fp"])
	}
}

func TestConvertSamplers(t *testing.T) {
	e := buildEffect(glslVertex, glslFragment)
	e.Parameters = append(e.Parameters, &effect.Parameter{
		Name:     "diffuse",
		BaseType: "sampler2D",
		SamplerStates: []effect.StateAssignment{
			effect.IntState("MinFilter", 9729),
			effect.IntState("Bad", 1, 2, 3, 4, 5),
		},
	})
	c, out := newTestConverter(t, &memLoader{effects: map[effect.Profile]*effect.Effect{effect.ProfileGLSL: e}})

	if err := c.Convert(context.Background()); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	doc, raw := readManifest(t, out)
	if !strings.Contains(raw, `"samplers":{"diffuse":{"MinFilter":9729}}`) {
		t.Errorf("manifest samplers wrong:\n%s", raw)
	}
	if _, ok := doc.Parameters["diffuse"]; !ok {
		t.Error("sampler parameter missing from parameters")
	}
	if c.Diagnostics().Len() != 1 || c.Diagnostics().Failed() {
		t.Errorf("want one warning, got %v", c.Diagnostics().Items())
	}
}

func TestConvertMissingFragment(t *testing.T) {
	loader := &memLoader{effects: map[effect.Profile]*effect.Effect{
		effect.ProfileGLSL: buildEffect(glslVertex, ""),
	}}
	c, out := newTestConverter(t, loader)

	if err := c.Convert(context.Background()); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !c.Diagnostics().Failed() {
		t.Fatal("missing fragment program should be recorded as an error")
	}
	var sb strings.Builder
	c.Diagnostics().Print(&sb)
	if !strings.Contains(sb.String(), "Error: lit : No fragment program.") {
		t.Errorf("diagnostics = %q", sb.String())
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("manifest should still be written: %v", err)
	}
}

func TestConvertConflict(t *testing.T) {
	fragment := strings.ReplaceAll(glslFragment, "_lightColor1", "_lightColor2")
	loader := &memLoader{effects: map[effect.Profile]*effect.Effect{
		effect.ProfileGLSL: buildEffect(glslVertex, fragment),
	}}
	c, out := newTestConverter(t, loader)

	err := c.Convert(context.Background())
	if !errors.Is(err, uniform.ErrConflict) {
		t.Fatalf("Convert() error = %v, want ErrConflict", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("no manifest may be written on a conflict, stat error = %v", err)
	}
}

func TestConvertLoadFailure(t *testing.T) {
	c, out := newTestConverter(t, &memLoader{})
	if err := c.Convert(context.Background()); err == nil {
		t.Fatal("Convert() should fail when the effect cannot be loaded")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("manifest written after load failure")
	}
}

func TestConvertNoOutput(t *testing.T) {
	c := NewConverter(Options{Loader: &memLoader{}})
	if err := c.Convert(context.Background()); !errors.Is(err, ErrNoOutput) {
		t.Errorf("Convert() error = %v, want ErrNoOutput", err)
	}
}

type recordingRunner struct {
	jobs []binary.Job
}

func (r *recordingRunner) Run(_ context.Context, script string, job binary.Job) ([]byte, error) {
	r.jobs = append(r.jobs, job)
	return []byte(filepath.Base(script) + ":" + job.Entry), nil
}

func TestConvertBinaryTargets(t *testing.T) {
	loader := &memLoader{effects: map[effect.Profile]*effect.Effect{
		effect.ProfileGLSL:  buildEffect(glslVertex, glslFragment),
		effect.ProfileHLSL5: buildEffect(hlslVertex, hlslFragment),
	}}
	runner := &recordingRunner{}

	opts := DefaultOptions()
	opts.Input = "simple.cgfx"
	opts.Output = filepath.Join(t.TempDir(), "simple.json")
	opts.Loader = loader
	opts.Compiler = &binary.Compiler{Process: runner}
	opts.Targets = []binary.Target{
		{Property: "glslbin", Script: "glsl.sh", Language: rewrite.GLSL},
		{Property: "dxbc", Script: "fxc.sh", Language: rewrite.HLSL5},
	}
	c := NewConverter(opts)

	if err := c.Convert(context.Background()); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	doc, _ := readManifest(t, opts.Output)
	if got := doc.Programs["fp"]["dxbc"]; got != "fxc.sh:fp" {
		t.Errorf("fp dxbc = %q", got)
	}
	if got := doc.Programs["vp"]["glslbin"]; got != "glsl.sh:vp" {
		t.Errorf("vp glslbin = %q", got)
	}

	if len(runner.jobs) != 4 {
		t.Fatalf("got %d jobs, want 4", len(runner.jobs))
	}
	glslJob, hlslJob := runner.jobs[0], runner.jobs[1]
	if glslJob.Profile != "" || glslJob.Code != doc.Programs["vp"]["code"] {
		t.Errorf("GLSL job = %+v", glslJob)
	}
	if hlslJob.Profile != "vs_5_0" || hlslJob.Type != "vertex" {
		t.Errorf("HLSL job = %+v", hlslJob)
	}
	if !strings.Contains(hlslJob.Code, "float4 _lightColor1;") || strings.Contains(hlslJob.Code, "attribute") {
		t.Errorf("HLSL job code:\n%s", hlslJob.Code)
	}
	if runner.jobs[3].Profile != "ps_5_0" {
		t.Errorf("fragment profile = %q", runner.jobs[3].Profile)
	}
	if loader.loads != 2 {
		t.Errorf("effect loaded %d times, want once per profile", loader.loads)
	}
}

func TestDependencies(t *testing.T) {
	loader := &memLoader{effects: map[effect.Profile]*effect.Effect{
		effect.ProfileGLSL: buildEffect(glslVertex, glslFragment),
	}}
	c, _ := newTestConverter(t, loader)

	got, err := c.Dependencies(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, ",") != "common.cgh,light.cgh" {
		t.Errorf("Dependencies() = %v", got)
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	if Logger().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("default logger should be disabled")
	}
	SetLogger(nil)
	if Logger() == nil {
		t.Error("SetLogger(nil) must install the silent logger")
	}
}
