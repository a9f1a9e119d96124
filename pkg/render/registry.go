package render

import (
	"errors"
	"fmt"
	"mime"
	"strings"
	"sync"
)

// ErrUnknownRenderer is returned when no renderer is registered under a name.
var ErrUnknownRenderer = errors.New("render: unknown renderer")

type entry struct {
	renderer  Renderer
	mediaType string
}

// Registry keeps output surfaces in registration order, addressable by name
// (CLI flags) and by media type (HTTP Accept headers).
type Registry struct {
	mu      sync.RWMutex
	entries []entry
	byName  map[string]int
	byType  map[string]int
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]int),
		byType: make(map[string]int),
	}
}

// Register adds a renderer under its Name(). When two renderers share a media
// type the first one answers Accept negotiation.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return errors.New("render: renderer name is required")
	}
	mediaType, _, err := mime.ParseMediaType(renderer.ContentType())
	if err != nil {
		return fmt.Errorf("render: renderer %q content type: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	idx := len(r.entries)
	r.entries = append(r.entries, entry{renderer: renderer, mediaType: mediaType})
	r.byName[name] = idx
	if _, taken := r.byType[mediaType]; !taken {
		r.byType[mediaType] = idx
	}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}
	return r.entries[idx].renderer, nil
}

// List returns renderer names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.renderer.Name()
	}
	return names
}

// Negotiate picks the renderer whose media type appears first in an Accept
// header value. Quality factors are not weighed. Wildcards, unknown types and
// empty headers resolve to fallback.
func (r *Registry) Negotiate(accept, fallback string) (Renderer, error) {
	r.mu.RLock()
	for _, part := range strings.Split(accept, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if idx, ok := r.byType[mediaType]; ok {
			renderer := r.entries[idx].renderer
			r.mu.RUnlock()
			return renderer, nil
		}
	}
	r.mu.RUnlock()
	return r.Get(fallback)
}
