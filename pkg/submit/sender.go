package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goliatone/go-dynform/pkg/question"
)

// Sender transmits serialized answers to the submission sink.
type Sender interface {
	Send(ctx context.Context, answers []question.Answer) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, answers []question.Answer) error

// Send calls fn.
func (fn SenderFunc) Send(ctx context.Context, answers []question.Answer) error {
	return fn(ctx, answers)
}

// HTTPSender posts answers as a JSON array. Only 200 OK counts as success.
type HTTPSender struct {
	url     string
	client  *http.Client
	timeout time.Duration
}

// SenderOption customises an HTTPSender.
type SenderOption func(*HTTPSender)

// WithHTTPClient overrides the client used for submissions.
func WithHTTPClient(client *http.Client) SenderOption {
	return func(s *HTTPSender) {
		if client != nil {
			s.client = client
		}
	}
}

// WithTimeout bounds each submission. Zero leaves the context untouched.
func WithTimeout(timeout time.Duration) SenderOption {
	return func(s *HTTPSender) {
		s.timeout = timeout
	}
}

// NewHTTPSender returns a sender posting to url.
func NewHTTPSender(url string, opts ...SenderOption) *HTTPSender {
	s := &HTTPSender{url: url, client: http.DefaultClient}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the submission address.
func (s *HTTPSender) URL() string { return s.url }

// Send posts answers and maps any status other than 200 to a StatusError.
func (s *HTTPSender) Send(ctx context.Context, answers []question.Answer) error {
	if answers == nil {
		answers = []question.Answer{}
	}
	body, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("submit: encode answers: %w", err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}
