package submit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalid reports a submission blocked by the validation pass. No
	// request was sent.
	ErrInvalid = errors.New("submit: form has invalid fields")
	// ErrInFlight reports a submit gesture received while a previous one on
	// the same handler has not finished.
	ErrInFlight = errors.New("submit: submission already in flight")
	// ErrNotAcknowledged reports a submission the sink accepted whose success
	// notice the user did not acknowledge. The form has been reset.
	ErrNotAcknowledged = errors.New("submit: success notice not acknowledged")
	// ErrTransport wraps network level failures raised by a Sender.
	ErrTransport = errors.New("submit: transport failure")
)

// StatusError reports a sink response other than 200 OK.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("submit: unexpected status %d", e.Code)
}
