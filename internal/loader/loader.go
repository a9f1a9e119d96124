package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-dynform/pkg/question"
)

// ErrHTTPDisabled is returned for URL sources when no HTTP client is
// configured.
var ErrHTTPDisabled = errors.New("loader: http support disabled")

// Loader implements question.Loader by delegating to file, fs.FS, or HTTP
// strategies.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
	strict  bool
}

var _ question.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options question.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		client = &clone
	case options.AllowHTTPFallback:
		client = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:      options.FileSystem,
		http:    client,
		timeout: timeout,
		strict:  options.Strict,
	}
}

// Load reads the schema behind src and decodes it into descriptors.
func (l *Loader) Load(ctx context.Context, src question.Source) ([]question.Descriptor, error) {
	if src == nil {
		return nil, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case question.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case question.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case question.SourceKindURL:
		if l.http == nil {
			return nil, ErrHTTPDisabled
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = fmt.Errorf("loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, err
	}

	doc, err := question.NewDocument(src, data)
	if err != nil {
		return nil, err
	}
	descriptors, err := doc.Descriptors()
	if err != nil {
		return nil, err
	}
	if l.strict {
		if err := question.Check(descriptors); err != nil {
			return nil, err
		}
	}
	return descriptors, nil
}
