package submit

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-dynform/pkg/form"
)

// Handler runs the submission pipeline for a form.
type Handler struct {
	sender   Sender
	notifier Notifier
	messages Messages
	logger   zerolog.Logger
	inFlight atomic.Bool
}

// Option customises a Handler.
type Option func(*Handler)

// WithLogger routes diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithMessages overrides the notification texts. Empty fields keep their
// defaults.
func WithMessages(messages Messages) Option {
	return func(h *Handler) {
		h.messages = messages.withDefaults()
	}
}

// NewHandler builds a handler transmitting through sender and reporting
// outcomes through notifier. A nil notifier drops notices.
func NewHandler(sender Sender, notifier Notifier, opts ...Option) *Handler {
	h := &Handler{
		sender:   sender,
		notifier: notifier,
		messages: DefaultMessages(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Attach registers the handler as the submit behaviour of f.
func (h *Handler) Attach(f *form.Form) {
	f.OnSubmit(func(ctx context.Context) error {
		return h.Submit(ctx, f)
	})
}

// Submit validates every input of f, sends the answers and notifies the
// user. It returns ErrInvalid when validation blocked the request and the
// transmission error when the sink rejected it; in that case the form keeps
// its values. A successful submission resets the form after the notice; when
// that notice fails the error wraps ErrNotAcknowledged.
func (h *Handler) Submit(ctx context.Context, f *form.Form) error {
	if !h.inFlight.CompareAndSwap(false, true) {
		h.logger.Warn().Str("form", f.ID()).Msg("submission ignored, previous one still in flight")
		return ErrInFlight
	}
	defer h.inFlight.Store(false)

	if !form.ValidateAll(f) {
		h.logger.Debug().Str("form", f.ID()).Msg("submission blocked by invalid fields")
		return ErrInvalid
	}

	answers := Serialize(f)
	if err := h.sender.Send(ctx, answers); err != nil {
		event := h.logger.Error().Err(err).Str("form", f.ID()).Int("answers", len(answers))
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			event = event.Int("status", statusErr.Code)
		}
		event.Msg("submission failed")

		if nerr := h.notify(ctx, NoticeFailure, h.messages.Failure); nerr != nil {
			return errors.Join(err, nerr)
		}
		return err
	}

	h.logger.Info().Str("form", f.ID()).Int("answers", len(answers)).Msg("submission accepted")
	nerr := h.notify(ctx, NoticeSuccess, h.messages.Success)
	f.Reset()
	if nerr != nil {
		return fmt.Errorf("%w: %w", ErrNotAcknowledged, nerr)
	}
	return nil
}

// InFlight reports whether a submission is currently running.
func (h *Handler) InFlight() bool {
	return h.inFlight.Load()
}

func (h *Handler) notify(ctx context.Context, kind NoticeKind, message string) error {
	if h.notifier == nil {
		return nil
	}
	if err := h.notifier.Notify(ctx, Notice{Kind: kind, Message: message}); err != nil {
		h.logger.Warn().Err(err).Str("notice", string(kind)).Msg("notification not acknowledged")
		return err
	}
	return nil
}
