package question

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader retrieves the descriptor list from a Source. Implementations live
// under internal/loader and are built through dynform.NewLoader.
type Loader interface {
	Load(ctx context.Context, src Source) ([]Descriptor, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS locations.
	FileSystem fs.FS

	// HTTPClient is used for URL sources. Nil disables HTTP unless
	// AllowHTTPFallback is set.
	HTTPClient *http.Client

	// AllowHTTPFallback enables URL sources with a default client.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetches. Zero means no timeout.
	RequestTimeout time.Duration

	// Strict runs Check on every decoded schema.
	Strict bool
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS for SourceKindFS locations.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects the client used for URL sources.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables URL sources with a default client and an optional
// timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithStrict toggles schema checking after decoding.
func WithStrict(strict bool) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Strict = strict
	}
}

// NewLoaderOptions applies the supplied options to a zero LoaderOptions.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
