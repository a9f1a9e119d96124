package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/question"
	"github.com/goliatone/go-dynform/pkg/render"
)

type fakeRenderer struct {
	name        string
	contentType string
}

func (f fakeRenderer) Name() string        { return f.name }
func (f fakeRenderer) ContentType() string { return f.contentType }
func (f fakeRenderer) Render(context.Context, *form.Form, render.RenderOptions) ([]byte, error) {
	return []byte(f.name), nil
}

func TestRegistry_RegisterAndNegotiate(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(fakeRenderer{name: "html", contentType: "text/html; charset=utf-8"})
	registry.MustRegister(fakeRenderer{name: "json", contentType: "application/json"})

	if err := registry.Register(fakeRenderer{name: "html", contentType: "text/html"}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if diff := cmp.Diff([]string{"html", "json"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	cases := map[string]string{
		"application/json":                        "json",
		"text/html,application/xhtml+xml":         "html",
		"application/xml, application/json;q=0.9": "json",
		"*/*":                                     "html",
		"":                                        "html",
	}
	for accept, want := range cases {
		got, err := registry.Negotiate(accept, "html")
		if err != nil {
			t.Fatalf("negotiate %q: %v", accept, err)
		}
		if got.Name() != want {
			t.Fatalf("negotiate %q: want %s, got %s", accept, want, got.Name())
		}
	}

	if _, err := registry.Negotiate("", "missing"); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected unknown fallback to fail, got %v", err)
	}
	if err := registry.Register(fakeRenderer{name: "broken", contentType: ";;"}); err == nil {
		t.Fatalf("expected malformed content type to fail")
	}
}

func TestView_ProjectsFormTree(t *testing.T) {
	f := form.NewHost("Send")
	err := form.Build(f, []question.Descriptor{
		{Type: "text", Name: "first", ID: "f1", Label: "First", Required: true},
		{Type: "radio", Name: "color", Legend: "Color", Options: []question.Option{{ID: "r1", Value: "red", Label: "Red"}}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	in, _ := f.Input("f1")
	in.SetValue("Ada")

	want := render.FormView{
		ID: form.DefaultID,
		Children: []render.NodeView{
			{Kind: "container", Children: []render.NodeView{
				{Kind: "label", For: "f1", Text: "First"},
				{Kind: "input", ID: "f1", Type: "text", Name: "first", Value: "Ada", Required: true,
					Attrs: []form.Attribute{{Name: form.AttrAriaRequired, Value: "true"}}},
				{Kind: "error", ID: "f1-error", Text: "Invalid First"},
			}},
			{Kind: "container", Children: []render.NodeView{
				{Kind: "fieldset", Children: []render.NodeView{
					{Kind: "legend", Text: "Color"},
					{Kind: "input", ID: "r1", Type: "radio", Name: "color", Value: "red"},
					{Kind: "label", For: "r1", Text: "Red"},
				}},
				{Kind: "error", ID: "color-error", Text: "Invalid Color"},
			}},
			{Kind: "button", Type: "submit", Text: "Send"},
		},
	}
	if diff := cmp.Diff(want, render.View(f)); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}
}

func TestSortedHiddenFields(t *testing.T) {
	got := render.SortedHiddenFields([]render.HiddenField{
		render.Hidden(" session ", "a"),
		render.Hidden("", "dropped"),
		render.Hidden("csrf", "x"),
		render.Hidden("session", "b"),
	})
	want := []render.HiddenField{{Name: "csrf", Value: "x"}, {Name: "session", Value: "b"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}
}
