package dynform

import (
	"context"

	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/question"
	"github.com/goliatone/go-dynform/pkg/render"
)

// RenderOptions describes per-request page chrome handed to renderers.
type RenderOptions = render.RenderOptions

// Page is a live form ready for interaction.
type Page = orchestrator.Page

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Open loads the schema from source, builds the form and wires its submit
// handler. A nil source uses the configured or default schema location.
func Open(ctx context.Context, source question.Source, options ...orchestrator.Option) (*Page, error) {
	return orchestrator.New(options...).Open(ctx, orchestrator.Request{Source: source})
}

// GenerateHTML opens a page and renders it with the named renderer, the HTML
// page renderer when rendererName is empty.
func GenerateHTML(ctx context.Context, source question.Source, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{Source: source}, rendererName, opts)
}

// GenerateHTMLFromDescriptors renders a form from descriptors already at hand,
// bypassing the loader.
func GenerateHTMLFromDescriptors(ctx context.Context, descriptors []question.Descriptor, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	if descriptors == nil {
		descriptors = []question.Descriptor{}
	}
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{Descriptors: descriptors}, rendererName, opts)
}
