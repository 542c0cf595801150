package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrPreconditionFailed is the sentinel for every PreconditionFailedError.
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrTransientIO is the sentinel for every TransientIOError.
	ErrTransientIO = errors.New("transient io failure")
)

// PreconditionFailedError reports that an entity exists but is not in the state the
// requested operation needs (an inactive rider, an order that is no longer pending).
type PreconditionFailedError struct {
	Subject string
	Reason  string
	Cause   error
}

// NewPreconditionFailedError creates a PreconditionFailedError without a cause.
func NewPreconditionFailedError(subject, reason string) *PreconditionFailedError {
	return &PreconditionFailedError{
		Subject: subject,
		Reason:  reason,
	}
}

// NewPreconditionFailedErrorWithCause creates a PreconditionFailedError wrapping cause.
func NewPreconditionFailedErrorWithCause(subject, reason string, cause error) *PreconditionFailedError {
	return &PreconditionFailedError{
		Subject: subject,
		Reason:  reason,
		Cause:   cause,
	}
}

func (e *PreconditionFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %s (cause: %v)", ErrPreconditionFailed, e.Subject, sanitize(e.Reason), e.Cause)
	}
	return fmt.Sprintf("%s: %s %s", ErrPreconditionFailed, e.Subject, sanitize(e.Reason))
}

// Is lets errors.Is match both the kind sentinel and the cause chain.
func (e *PreconditionFailedError) Is(target error) bool {
	return target == ErrPreconditionFailed || (e.Cause != nil && errors.Is(e.Cause, target))
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}

// TransientIOError reports a failure of the backing store itself (connectivity,
// serialization conflicts, timeouts). The core never retries these.
type TransientIOError struct {
	Operation string
	Cause     error
}

// NewTransientIOError wraps cause as a TransientIOError for operation.
func NewTransientIOError(operation string, cause error) *TransientIOError {
	return &TransientIOError{
		Operation: operation,
		Cause:     cause,
	}
}

func (e *TransientIOError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrTransientIO, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrTransientIO, e.Operation)
}

// Is lets errors.Is match both the kind sentinel and the cause chain, so a
// context.DeadlineExceeded cause stays visible to callers.
func (e *TransientIOError) Is(target error) bool {
	return target == ErrTransientIO || (e.Cause != nil && errors.Is(e.Cause, target))
}

func (e *TransientIOError) Unwrap() error {
	return ErrTransientIO
}
