package dynform

import (
	internalLoader "github.com/goliatone/go-dynform/internal/loader"
	"github.com/goliatone/go-dynform/pkg/question"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...question.LoaderOption) question.Loader {
	cfg := question.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}
