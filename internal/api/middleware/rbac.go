package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/stackit/qna-api/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth, which is
// the single place the actor's role is resolved; every admin route shares
// this one predicate instead of re-checking roles per handler.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[user.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
