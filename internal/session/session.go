// Package session keeps the live form of every open page view. Each session
// is the single owner of its form tree; one interaction at a time runs through
// Do and concurrent ones are turned away with ErrBusy.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/submit"
)

// ErrBusy reports an interaction attempted while another one holds the
// session.
var ErrBusy = errors.New("session: busy")

// Session owns one page view.
type Session struct {
	id string

	mu   sync.Mutex
	page *orchestrator.Page

	noticeMu sync.Mutex
	notice   *submit.Notice
}

var _ submit.Notifier = (*Session)(nil)

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Bind attaches the page opened for this session.
func (s *Session) Bind(page *orchestrator.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
}

// Do runs fn with exclusive access to the session page. When another
// interaction holds the session, fn is not run and ErrBusy is returned.
func (s *Session) Do(fn func(page *orchestrator.Page)) error {
	if !s.mu.TryLock() {
		return ErrBusy
	}
	defer s.mu.Unlock()
	fn(s.page)
	return nil
}

// Notify records the submission outcome until the next render picks it up.
func (s *Session) Notify(_ context.Context, notice submit.Notice) error {
	s.noticeMu.Lock()
	defer s.noticeMu.Unlock()
	n := notice
	s.notice = &n
	return nil
}

// TakeNotice returns the pending notice, if any, and clears it.
func (s *Session) TakeNotice() *submit.Notice {
	s.noticeMu.Lock()
	defer s.noticeMu.Unlock()
	n := s.notice
	s.notice = nil
	return n
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger routes eviction diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store holds sessions that expire ttl after their last use.
type Store struct {
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewStore constructs an empty store.
func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		ttl:      ttl,
		now:      time.Now,
		logger:   zerolog.Nop(),
		sessions: make(map[string]*entry),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// New allocates a session with a fresh identifier. It is not retrievable
// until Save is called.
func (s *Store) New() *Session {
	return &Session{id: uuid.NewString()}
}

// Save stores sess, refreshing its expiry.
func (s *Store) Save(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.id] = &entry{session: sess, lastSeen: s.now()}
}

// Get returns a live session and refreshes its expiry. Expired sessions are
// removed and reported as missing.
func (s *Store) Get(id string) (*Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.expired(e, now) {
		delete(s.sessions, id)
		return nil, false
	}
	e.lastSeen = now
	return e.session, true
}

// Delete forgets id.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len reports the number of stored sessions, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, e := range s.sessions {
		if s.expired(e, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = s.ttl
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug().Int("sessions", n).Msg("expired sessions removed")
			}
		}
	}
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl
}
