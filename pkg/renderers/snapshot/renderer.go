// Package snapshot renders a live form as an indented JSON document. It is
// meant for debugging and for clients that draw the form themselves.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/submit"
)

// Name is the registry key of the snapshot renderer.
const Name = "json"

// Document is the payload written by the renderer.
type Document struct {
	Title  string               `json:"title,omitempty"`
	Action string               `json:"action,omitempty"`
	Hidden []render.HiddenField `json:"hidden,omitempty"`
	Form   render.FormView      `json:"form"`
	Notice *submit.Notice       `json:"notice,omitempty"`
}

type Renderer struct {
	indent string
}

// Option customises the renderer.
type Option func(*Renderer)

// WithIndent sets the indentation string. Empty produces compact output.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a snapshot renderer indenting with two spaces.
func New(opts ...Option) *Renderer {
	r := &Renderer{indent: "  "}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string { return Name }

func (r *Renderer) ContentType() string { return "application/json" }

// Render encodes the projection of f together with the page options.
func (r *Renderer) Render(_ context.Context, f *form.Form, opts render.RenderOptions) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("snapshot renderer: form is nil")
	}
	doc := Document{
		Title:  opts.Title,
		Action: opts.Action,
		Hidden: render.SortedHiddenFields(opts.Hidden),
		Form:   render.View(f),
		Notice: opts.Notice,
	}

	var (
		out []byte
		err error
	)
	if r.indent == "" {
		out, err = json.Marshal(doc)
	} else {
		out, err = json.MarshalIndent(doc, "", r.indent)
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot renderer: encode: %w", err)
	}
	return out, nil
}
