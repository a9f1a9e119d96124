package gotemplate_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-dynform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-dynform/pkg/testsupport"
)

var templates = fstest.MapFS{
	"hello.tpl":      {Data: []byte(`Hello {{ name|trim }}`)},
	"use-global.tpl": {Data: []byte(`env={{ settings.env }}`)},
	"use-filter.tpl": {Data: []byte(`{{ name|shout }}`)},
	"escape.tpl":     {Data: []byte(`<p>{{ label }}</p>`)},
	"outer.tpl":      {Data: []byte(`[{% include "inner.tpl" with item=value %}]`)},
	"inner.tpl":      {Data: []byte(`{{ item }}`)},
}

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(templates)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_Render(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.Render("hello", map[string]any{"name": "  Ada "}, w)
	})
	if result != "Hello Ada" || written != result {
		t.Fatalf("unexpected output %q / %q", result, written)
	}

	again, err := engine.Render("hello.tpl", map[string]any{"name": "Grace"})
	if err != nil {
		t.Fatalf("render with extension: %v", err)
	}
	if again != "Hello Grace" {
		t.Fatalf("unexpected output %q", again)
	}
}

func TestEngine_AutoEscapesAndIncludes(t *testing.T) {
	engine := newEngine(t)

	out, err := engine.Render("escape", map[string]any{"label": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<p>&lt;b&gt;x&lt;/b&gt;</p>" {
		t.Fatalf("expected escaped output, got %q", out)
	}

	out, err = engine.Render("outer", map[string]any{"value": "v"})
	if err != nil {
		t.Fatalf("render include: %v", err)
	}
	if out != "[v]" {
		t.Fatalf("unexpected include output %q", out)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "dev"},
	}))

	out, err := engine.Render("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "env=dev" {
		t.Fatalf("unexpected output %q", out)
	}

	if err := engine.GlobalContext(map[string]any{"settings": map[string]any{"env": "staging"}}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	out, err = engine.Render("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "env=staging" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter to fail")
	}

	out, err := engine.Render("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "ADA!" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEngine_Errors(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
	engine := newEngine(t)
	if _, err := engine.Render("missing", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
	if _, err := engine.Render("hello", struct{}{}); err == nil {
		t.Fatalf("expected unsupported data error")
	}

	out, err := engine.RenderString("{{ a }}-{{ b }}", map[string]any{"a": 1, "b": "two"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "1-two" {
		t.Fatalf("unexpected output %q", out)
	}
}
