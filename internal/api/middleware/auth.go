package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/Vince489/Auth/internal/api/metrics"
	"github.com/Vince489/Auth/internal/core/domain"
	"github.com/Vince489/Auth/internal/core/ports"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "jwt"

// UserContextKey is where Session stores the authenticated user on the echo
// context.
const UserContextKey = "session_user"

// Session validates the session cookie and injects the resolved user into the
// context. Requests without a valid, unexpired token whose record still exists
// never reach the wrapped handler.
func Session(svc ports.AccountService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				metrics.SessionValidationsTotal.WithLabelValues("invalid").Inc()
				return domain.ErrInvalidToken
			}

			user, err := svc.ValidateSession(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.SessionValidationsTotal.WithLabelValues("orphaned").Inc()
				} else {
					metrics.SessionValidationsTotal.WithLabelValues("invalid").Inc()
				}
				return err
			}

			metrics.SessionValidationsTotal.WithLabelValues("valid").Inc()
			c.Set(UserContextKey, user)

			return next(c)
		}
	}
}

// SessionUser extracts the user injected by Session. It returns nil when the
// middleware did not run.
func SessionUser(c echo.Context) *domain.User {
	user, _ := c.Get(UserContextKey).(*domain.User)
	return user
}
