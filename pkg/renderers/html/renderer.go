// Package html renders a live form as a server side HTML page. The last
// submission notice, when present, is shown as an open dialog the user has to
// dismiss.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/render"
	rendertemplate "github.com/goliatone/go-dynform/pkg/render/template"
	"github.com/goliatone/go-dynform/pkg/render/template/gotemplate"
)

// Name is the registry key of the HTML renderer.
const Name = "html"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	entry            string
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithFragment renders only the form element instead of a full page.
func WithFragment() Option {
	return func(cfg *config) {
		cfg.entry = "form"
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	entry     string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{entry: "page"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &Renderer{templates: renderer, entry: cfg.entry}, nil
}

func (r *Renderer) Name() string { return Name }

func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render executes the page template with a projection of f.
func (r *Renderer) Render(_ context.Context, f *form.Form, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if f == nil {
		return nil, fmt.Errorf("html renderer: form is nil")
	}

	data := map[string]any{
		"form":   render.View(f),
		"title":  opts.Title,
		"intro":  SanitizeIntro(opts.Intro),
		"action": opts.Action,
		"hidden": render.SortedHiddenFields(opts.Hidden),
	}
	if opts.Notice != nil {
		data["notice"] = map[string]any{
			"kind":    string(opts.Notice.Kind),
			"message": opts.Notice.Message,
		}
	}

	result, err := r.templates.Render(r.entry, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}
