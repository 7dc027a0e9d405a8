package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stackit/qna-api/internal/api/middleware"
	"github.com/stackit/qna-api/internal/core/domain"
)

// actor extracts the user injected by the Auth middleware. A nil user on a
// protected route means the middleware chain is miswired; fail closed.
func actor(c echo.Context) (*domain.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// viewerID resolves the optional viewer on public routes: 0 for anonymous.
func viewerID(c echo.Context) uint {
	if user := middleware.CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}

// pathID parses a numeric :id path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return uint(id), nil
}
