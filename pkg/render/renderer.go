package render

import (
	"context"

	"github.com/goliatone/go-dynform/pkg/form"
)

// Renderer converts a live form into a byte representation (HTML page, JSON
// snapshot).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, f *form.Form, options RenderOptions) ([]byte, error)
}
