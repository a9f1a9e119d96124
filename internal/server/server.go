// Package server hosts dynamic forms over HTTP. Every GET of the page opens a
// session owning a freshly loaded form; the form posts back to the same
// session, which runs the submission and re-renders with the outcome.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-dynform/internal/session"
	"github.com/goliatone/go-dynform/pkg/contract"
	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/submit"
)

// SessionField names the hidden input carrying the session id.
const SessionField = "_session"

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-Id"

const maxBodyBytes = 1 << 20

// PageText is the chrome rendered around every form.
type PageText struct {
	Title string
	Intro string
}

// Option customises a Server.
type Option func(*Server)

// WithLogger routes request and pipeline diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithPageText sets the page title and intro markup.
func WithPageText(text PageText) Option {
	return func(s *Server) {
		s.text = text
	}
}

// WithMock mounts the mock schema and submission endpoints.
func WithMock(enabled bool) Option {
	return func(s *Server) {
		s.mock = enabled
	}
}

// WithContract replaces the embedded endpoint contract.
func WithContract(c *contract.Contract) Option {
	return func(s *Server) {
		s.contract = c
	}
}

// Server is the HTTP host.
type Server struct {
	orch     *orchestrator.Orchestrator
	store    *session.Store
	contract *contract.Contract
	text     PageText
	mock     bool
	logger   zerolog.Logger
}

// New wires a server around orch and store.
func New(orch *orchestrator.Orchestrator, store *session.Store, opts ...Option) (*Server, error) {
	if orch == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	if store == nil {
		return nil, errors.New("server: session store is required")
	}
	s := &Server{orch: orch, store: store, logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.contract == nil {
		c, err := contract.Load(context.Background())
		if err != nil {
			return nil, fmt.Errorf("server: load contract: %w", err)
		}
		s.contract = c
	}
	return s, nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /{$}", s.handleSubmit)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /openapi.json", s.handleContract)
	if s.mock {
		mux.HandleFunc("GET "+MockQuestionsPath, s.handleMockQuestions)
		mux.HandleFunc("POST "+MockSubmitPath, s.handleMockSubmit)
	}
	return s.withRequestLogging(mux)
}

// Run serves on addr until ctx is done, then shuts down within grace.
func (s *Server) Run(ctx context.Context, addr string, grace time.Duration) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}
	return s.Serve(ctx, listener, grace)
}

// Serve is Run over an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener, grace time.Duration) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info().Str("addr", listener.Addr().String()).Msg("listening")
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return s.store.Run(gCtx, 0)
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		s.logger.Info().Msg("server stopped")
		return nil
	})
	return g.Wait()
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)
	sess := s.store.New()
	page, err := s.orch.Open(r.Context(), orchestrator.Request{Notifier: sess})
	if err != nil {
		log.Error().Err(err).Msg("open page")
		http.Error(w, "unable to open form", http.StatusInternalServerError)
		return
	}
	sess.Bind(page)
	s.store.Save(sess)
	log.Debug().Str("session", sess.ID()).Int("inputs", len(page.Form.Inputs())).Msg("session opened")

	if err := sess.Do(func(page *orchestrator.Page) {
		s.write(w, r, http.StatusOK, page.Form, s.renderOptions(sess, nil))
	}); err != nil {
		s.busy(w, r, sess)
	}
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	sess, ok := s.store.Get(r.PostForm.Get(SessionField))
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// The session stays held until the response is written so the rendered
	// form and notice belong to this submission.
	err := sess.Do(func(page *orchestrator.Page) {
		f := page.Form
		Apply(f, r.PostForm)
		status := http.StatusOK
		switch err := f.Submit(r.Context()); {
		case errors.Is(err, submit.ErrInvalid):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, submit.ErrInFlight):
			status = http.StatusConflict
		}
		s.write(w, r, status, f, s.renderOptions(sess, sess.TakeNotice()))
	})
	if err != nil {
		s.busy(w, r, sess)
	}
}

// busy answers a request that arrived while its session was still serving
// another one, typically a repeated submit gesture.
func (s *Server) busy(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	hlog.FromRequest(r).Warn().Str("session", sess.ID()).Msg("session busy, request rejected")
	http.Error(w, "submission already in flight", http.StatusConflict)
}

func (s *Server) handleContract(w http.ResponseWriter, r *http.Request) {
	body, err := s.contract.JSON()
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode contract")
		http.Error(w, "contract unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (s *Server) renderOptions(sess *session.Session, notice *submit.Notice) render.RenderOptions {
	return render.RenderOptions{
		Title:  s.text.Title,
		Intro:  s.text.Intro,
		Action: "/",
		Hidden: []render.HiddenField{render.Hidden(SessionField, sess.ID())},
		Notice: notice,
	}
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, f *form.Form, opts render.RenderOptions) {
	log := hlog.FromRequest(r)
	renderer, err := s.orch.Registry().Negotiate(r.Header.Get("Accept"), s.orch.DefaultRenderer())
	if err != nil {
		log.Error().Err(err).Msg("select renderer")
		http.Error(w, "no renderer available", http.StatusNotAcceptable)
		return
	}
	output, err := s.orch.Render(r.Context(), f, renderer.Name(), opts)
	if err != nil {
		log.Error().Err(err).Str("renderer", renderer.Name()).Msg("render page")
		http.Error(w, "unable to render form", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	if _, err := w.Write(output); err != nil {
		log.Error().Err(err).Msg("write response")
	}
}

// Apply copies posted values onto the form. Radios and checkboxes are
// checked when their value was posted under their name; other inputs take
// the first posted value for their name.
func Apply(f *form.Form, values url.Values) {
	for _, in := range f.Inputs() {
		posted, present := values[in.Name()]
		if in.Checkable() {
			in.SetChecked(present && slices.Contains(posted, in.Value()))
			continue
		}
		if len(posted) > 0 {
			in.SetValue(posted[0])
		} else {
			in.SetValue("")
		}
	}
}

// withRequestLogging attaches a request scoped logger carrying a request id
// and logs every request once it completes.
func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})
	return hlog.NewHandler(s.logger)(
		hlog.RequestIDHandler("req_id", RequestIDHeader)(access(next)),
	)
}
