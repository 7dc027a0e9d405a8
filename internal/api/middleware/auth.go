package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stackit/qna-api/internal/core/domain"
	"github.com/stackit/qna-api/internal/core/ports"
)

// CookieName is where the signed auth token lives; the Authorization header
// is accepted as a fallback for non-browser clients.
const CookieName = "auth_token"

// userKey is the echo context key the resolved user is stored under.
const userKey = "current_user"

// Auth resolves the request's token to a fresh user record and injects it
// into the context. Missing, invalid or expired tokens and inactive accounts
// are rejected before the handler runs.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return domain.ErrUnauthenticated
			}

			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(userKey, user)
			return next(c)
		}
	}
}

// OptionalAuth resolves the token when present but lets the request through
// anonymously otherwise. Invalid tokens are tolerated, matching the public
// question detail view where a stale cookie must not block reading.
func OptionalAuth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := extractToken(c); token != "" {
				if user, err := auth.Authenticate(c.Request().Context(), token); err == nil {
					c.Set(userKey, user)
				}
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user injected by Auth, or nil for anonymous
// requests under OptionalAuth.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userKey).(*domain.User)
	return user
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
