package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goliatone/go-dynform/pkg/contract"
	"github.com/goliatone/go-dynform/pkg/question"
)

// SchemaServer serves body as the question schema on every GET.
func SchemaServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// Sink is a submission endpoint recording every request. Bodies are checked
// against the endpoint contract and contract violations answer 400.
type Sink struct {
	Server *httptest.Server

	mu       sync.Mutex
	status   int
	requests []SinkRequest
	contract *contract.Contract
	arrived  chan struct{}
	gate     chan struct{}
}

// SinkRequest is one recorded submission.
type SinkRequest struct {
	ContentType string
	Body        string
	Answers     []question.Answer
	Violation   error
}

// NewSink starts a sink answering with status.
func NewSink(t *testing.T, status int) *Sink {
	t.Helper()
	s := &Sink{status: status, contract: contract.MustLoad()}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Server.Close)
	return s
}

// URL returns the sink address.
func (s *Sink) URL() string { return s.Server.URL }

// SetStatus changes the status returned for subsequent requests.
func (s *Sink) SetStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// Hold makes the sink park every subsequent request until release is called.
// Arrived receives once for each parked request.
func (s *Sink) Hold() (arrived <-chan struct{}, release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arrived = make(chan struct{}, 16)
	s.gate = make(chan struct{})
	gate := s.gate
	var once sync.Once
	return s.arrived, func() { once.Do(func() { close(gate) }) }
}

// Requests returns a copy of the recorded submissions.
func (s *Sink) Requests() []SinkRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SinkRequest(nil), s.requests...)
}

func (s *Sink) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	req := SinkRequest{
		ContentType: r.Header.Get("Content-Type"),
		Body:        string(body),
		Violation:   s.contract.ValidateAnswers(body),
	}
	_ = json.Unmarshal(body, &req.Answers)

	s.mu.Lock()
	s.requests = append(s.requests, req)
	status := s.status
	arrived, gate := s.arrived, s.gate
	s.mu.Unlock()

	if gate != nil {
		select {
		case arrived <- struct{}{}:
		default:
		}
		<-gate
	}

	if req.Violation != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.WriteHeader(status)
}
