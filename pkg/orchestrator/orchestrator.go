package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	internalLoader "github.com/goliatone/go-dynform/internal/loader"
	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/question"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/html"
	"github.com/goliatone/go-dynform/pkg/renderers/snapshot"
	"github.com/goliatone/go-dynform/pkg/submit"
)

// Default remote endpoints of the form.
const (
	DefaultSchemaURL = "https://mocki.io/v1/84954ef5-462f-462a-b692-6531e75c220d"
	DefaultSubmitURL = "https://0211560d-577a-407d-94ab-dc0383c943e0.mock.pstmn.io/submitform"
)

const defaultRendererName = html.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom schema loader.
func WithLoader(loader question.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithSource sets the schema source used when a request names none.
func WithSource(src question.Source) Option {
	return func(o *Orchestrator) {
		o.source = src
	}
}

// WithSender injects the transport used for submissions.
func WithSender(sender submit.Sender) Option {
	return func(o *Orchestrator) {
		o.sender = sender
	}
}

// WithNotifier sets the notifier used when a request brings none.
func WithNotifier(notifier submit.Notifier) Option {
	return func(o *Orchestrator) {
		o.notifier = notifier
	}
}

// WithMessages overrides the submission notification texts.
func WithMessages(messages submit.Messages) Option {
	return func(o *Orchestrator) {
		o.messages = messages
	}
}

// WithSubmitLabel sets the text of the submit control.
func WithSubmitLabel(label string) Option {
	return func(o *Orchestrator) {
		o.submitLabel = label
	}
}

// WithSchemaTransformer registers a Transformer run between loading and
// rendering.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request names none.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithLogger routes pipeline diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates loading, rendering and submission wiring. Missing
// dependencies default to the built-in implementations pointed at the
// default endpoints.
type Orchestrator struct {
	loader          question.Loader
	source          question.Source
	sender          submit.Sender
	notifier        submit.Notifier
	messages        submit.Messages
	submitLabel     string
	transformer     Transformer
	registry        *render.Registry
	defaultRenderer string
	logger          zerolog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	o.applyDefaults()
	return o
}

// Request describes one page view.
type Request struct {
	// Source overrides the configured schema source.
	Source question.Source
	// Descriptors bypasses the loader when the schema is already at hand.
	Descriptors []question.Descriptor
	// Notifier overrides the configured notifier for this page, e.g. to
	// capture the notice of an HTTP session.
	Notifier submit.Notifier
}

// Page is a live form ready for interaction.
type Page struct {
	Form    *form.Form
	Handler *submit.Handler
	// Descriptors holds what was rendered, after transformation.
	Descriptors []question.Descriptor
	// LoadErr records a schema that could not be fetched or decoded. The
	// form is then empty apart from its submit control.
	LoadErr error
	// BuildErr records a descriptor that stopped rendering part way.
	BuildErr error
}

// Open runs the page-ready pipeline. Schema and rendering failures are
// logged and recorded on the Page rather than returned, leaving a usable
// form with whatever fields were built.
func (o *Orchestrator) Open(ctx context.Context, req Request) (*Page, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	f := form.NewHost(o.submitLabel)
	notifier := req.Notifier
	if notifier == nil {
		notifier = o.notifier
	}
	handler := submit.NewHandler(o.sender, notifier,
		submit.WithLogger(o.logger),
		submit.WithMessages(o.messages),
	)
	handler.Attach(f)
	page := &Page{Form: f, Handler: handler}

	descriptors, err := o.descriptors(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		o.logger.Error().Err(err).Str("source", sourceLocation(o.sourceFor(req))).Msg("schema unavailable, rendering empty form")
		page.LoadErr = err
		return page, nil
	}
	page.Descriptors = descriptors

	if err := form.Build(f, descriptors); err != nil {
		o.logger.Error().Err(err).Msg("form rendering stopped")
		page.BuildErr = err
	}
	o.logger.Debug().Int("descriptors", len(descriptors)).Int("inputs", len(f.Inputs())).Msg("form ready")
	return page, nil
}

// Render renders f with the named renderer, or the default one.
func (o *Orchestrator) Render(ctx context.Context, f *form.Form, rendererName string, opts render.RenderOptions) ([]byte, error) {
	renderer, err := o.rendererFor(rendererName)
	if err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Generate opens a page and renders it in one step.
func (o *Orchestrator) Generate(ctx context.Context, req Request, rendererName string, opts render.RenderOptions) ([]byte, error) {
	page, err := o.Open(ctx, req)
	if err != nil {
		return nil, err
	}
	return o.Render(ctx, page.Form, rendererName, opts)
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry { return o.registry }

// DefaultRenderer reports the renderer used when none is named.
func (o *Orchestrator) DefaultRenderer() string { return o.defaultRenderer }

func (o *Orchestrator) descriptors(ctx context.Context, req Request) ([]question.Descriptor, error) {
	descriptors := req.Descriptors
	if descriptors == nil {
		src := o.sourceFor(req)
		if src == nil {
			return nil, errors.New("orchestrator: schema source is required")
		}
		loaded, err := o.loader.Load(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load schema: %w", err)
		}
		descriptors = loaded
	}
	if o.transformer != nil {
		transformed, err := o.transformer.Transform(ctx, descriptors)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: transform schema: %w", err)
		}
		descriptors = transformed
	}
	return descriptors, nil
}

func (o *Orchestrator) sourceFor(req Request) question.Source {
	if req.Source != nil {
		return req.Source
	}
	return o.source
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(question.NewLoaderOptions(question.WithHTTPFallback(0)))
	}
	if o.source == nil {
		o.source = question.MustSourceFromURL(DefaultSchemaURL)
	}
	if o.sender == nil {
		o.sender = submit.NewHTTPSender(DefaultSubmitURL)
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
		o.registry.MustRegister(snapshot.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

func sourceLocation(src question.Source) string {
	if src == nil {
		return ""
	}
	return src.Location()
}
