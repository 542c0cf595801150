package commands

import (
	"errors"
	"fmt"

	"backoffice/internal/pkg/errs"
)

// Workflow errors. Each wraps its kind sentinel from errs, so callers can classify
// with errors.Is at either level.
var (
	ErrOrderNotFound = fmt.Errorf("%w: order", errs.ErrObjectNotFound)
	ErrRiderNotFound = fmt.Errorf("%w: rider", errs.ErrObjectNotFound)

	// ErrOrderStateChanged is returned by cancel when the order moved to another
	// non-terminal status between the read and the conditional write.
	ErrOrderStateChanged = fmt.Errorf("%w: order status changed concurrently", errs.ErrPreconditionFailed)

	// ErrUnauthorized is returned by command constructors when the caller's role is
	// below the role the operation requires.
	ErrUnauthorized = errors.New("caller is not authorized for this operation")
)

// notFound rewrites a repository not-found error into the workflow sentinel and
// passes every other error through unchanged.
func notFound(err, sentinel error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}
