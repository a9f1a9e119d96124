package server

import (
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"
)

// Mock endpoint paths, mounted when the mock option is on.
const (
	MockQuestionsPath = "/mock/questions"
	MockSubmitPath    = "/mock/submit"
)

//go:embed mock/questions.json
var mockQuestions []byte

// MockQuestions returns the bundled sample schema.
func MockQuestions() []byte {
	return append([]byte(nil), mockQuestions...)
}

// MockURLs returns the schema and submit addresses of the mock endpoints
// served on addr.
func MockURLs(addr string) (schemaURL, submitURL string) {
	host := addr
	if strings.HasPrefix(host, ":") {
		host = "127.0.0.1" + host
	}
	base := "http://" + host
	return base + MockQuestionsPath, base + MockSubmitPath
}

func (s *Server) handleMockQuestions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(mockQuestions); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("write mock questions")
	}
}

func (s *Server) handleMockSubmit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "unreadable body", http.StatusBadRequest)
		return
	}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		http.Error(w, "expected application/json", http.StatusUnsupportedMediaType)
		return
	}
	if err := s.contract.ValidateAnswers(body); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("mock submit rejected payload")
		http.Error(w, fmt.Sprintf("invalid answers: %v", err), http.StatusBadRequest)
		return
	}
	hlog.FromRequest(r).Info().RawJSON("answers", body).Msg("mock submit received answers")
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"status":"ok"}`)
}
