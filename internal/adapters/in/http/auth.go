package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/role"
	"backoffice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// UserIDHeader carries the identity authenticated by the gateway in front of the
// back office.
const UserIDHeader = "X-User-ID"

const callerKey = "caller"

// ProfileQueryHandler resolves a caller identity into its profile.
type ProfileQueryHandler interface {
	Handle(ctx context.Context, query queries.GetProfileQuery) (queries.ProfileView, error)
}

// Authenticate loads the caller's profile from the UserIDHeader identity. Requests
// without a valid identity, or whose identity has no profile, get 401.
func Authenticate(profiles ProfileQueryHandler) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := kernel.UUIDFromString(strings.TrimSpace(c.Request().Header.Get(UserIDHeader)))
			if err != nil {
				return unauthorized(c)
			}
			query, err := queries.NewGetProfileQuery(id)
			if err != nil {
				return unauthorized(c)
			}

			caller, err := profiles.Handle(c.Request().Context(), query)
			if errors.Is(err, errs.ErrObjectNotFound) {
				return unauthorized(c)
			}
			if err != nil {
				return c.JSON(httpStatus(err), ErrorResponse{
					Code:    httpStatus(err),
					Kind:    errorKind(err),
					Message: "failed to load caller profile",
				})
			}

			c.Set(callerKey, caller)
			return next(c)
		}
	}
}

// RequireRole rejects callers whose role does not satisfy required with 403.
// It must run after Authenticate.
func RequireRole(required role.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !role.HasPermission(callerRole(c), required) {
				return c.JSON(http.StatusForbidden, ErrorResponse{
					Code:    http.StatusForbidden,
					Kind:    "forbidden",
					Message: "insufficient role",
				})
			}
			return next(c)
		}
	}
}

func callerOf(c echo.Context) (queries.ProfileView, bool) {
	caller, ok := c.Get(callerKey).(queries.ProfileView)
	return caller, ok
}

// callerRole is role.Unknown for unauthenticated requests.
func callerRole(c echo.Context) role.Role {
	caller, ok := callerOf(c)
	if !ok {
		return role.Unknown
	}
	return caller.Role
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Kind:    "unauthorized",
		Message: "missing or unknown caller identity",
	})
}
