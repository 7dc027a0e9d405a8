package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stackit/qna-api/internal/core/domain"
	"github.com/stackit/qna-api/internal/core/ports"
)

// UserHandler serves the public member directory.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type publicUser struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// List returns active members matching an optional search term.
//
// @Summary      Member directory
// @Tags         users
// @Produce      json
// @Param        search  query     string  false  "Match against name or email"
// @Param        limit   query     int     false  "Max rows (default 20)"
// @Param        offset  query     int     false  "Rows to skip"
// @Success      200     {array}   publicUser
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	var req struct {
		Search string `query:"search"`
		Limit  int    `query:"limit"`
		Offset int    `query:"offset"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	users, err := h.users.List(c.Request().Context(), req.Search, req.Limit, req.Offset)
	if err != nil {
		return err
	}

	out := make([]publicUser, 0, len(users))
	for _, u := range users {
		out = append(out, toPublicUser(u))
	}
	return c.JSON(http.StatusOK, out)
}

func toPublicUser(u *domain.User) publicUser {
	return publicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}
