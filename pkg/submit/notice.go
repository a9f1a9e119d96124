package submit

import "context"

// NoticeKind tells success and failure notifications apart.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeFailure NoticeKind = "failure"
)

// Notice is the user facing outcome of a submission.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// Notifier presents a Notice to the user. Implementations must not return
// until the user has acknowledged it, or until ctx is done.
type Notifier interface {
	Notify(ctx context.Context, notice Notice) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, notice Notice) error

// Notify calls fn.
func (fn NotifierFunc) Notify(ctx context.Context, notice Notice) error {
	return fn(ctx, notice)
}

// Messages holds the notification texts.
type Messages struct {
	Success string
	Failure string
}

// DefaultMessages returns the stock notification texts.
func DefaultMessages() Messages {
	return Messages{
		Success: "Form submitted successfully!",
		Failure: "Error submitting form. Please try again.",
	}
}

func (m Messages) withDefaults() Messages {
	defaults := DefaultMessages()
	if m.Success == "" {
		m.Success = defaults.Success
	}
	if m.Failure == "" {
		m.Failure = defaults.Failure
	}
	return m
}
