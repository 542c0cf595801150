// Package dberr turns database driver failures into the error kinds of
// backoffice/internal/pkg/errs, so the core can tell store outages apart from
// programming errors without importing pgx.
package dberr

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"backoffice/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes that describe the state of the server or the connection rather
// than the statement.
var transientClasses = []string{
	"08", // connection exception
	"40", // transaction rollback: serialization failure, deadlock
	"53", // insufficient resources
	"57", // operator intervention: admin shutdown, query canceled
	"58", // system error
}

// Classify wraps err as a TransientIOError for operation when it comes from the
// connection or the server state, and returns it unchanged otherwise. A nil err
// stays nil.
//
// Example:
//
//	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
//	    return dberr.Classify("add order", err)
//	}
func Classify(operation string, err error) error {
	if err == nil || !IsTransient(err) {
		return err
	}
	return errs.NewTransientIOError(operation, err)
}

// IsTransient reports whether err describes a store outage.
func IsTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		for _, class := range transientClasses {
			if strings.HasPrefix(pgErr.Code, class) {
				return true
			}
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return pgconn.Timeout(err) || pgconn.SafeToRetry(err)
}
