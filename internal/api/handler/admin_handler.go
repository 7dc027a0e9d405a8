package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stackit/qna-api/internal/core/ports"
)

// AdminHandler exposes the user-management console. Every route behind it is
// guarded by the admin RBAC middleware.
type AdminHandler struct {
	users ports.UserService
}

func NewAdminHandler(users ports.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

type adminUpdateUserRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	Role      *string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
	IsActive  *bool   `json:"isActive"`
}

// ListUsers returns a page of all accounts, active or not.
//
// @Summary      List accounts
// @Tags         admin
// @Produce      json
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 50)"
// @Param        search  query     string  false  "Match against name or email"
// @Success      200     {object}  ports.UserPage
// @Failure      403     {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	var req struct {
		Page   int    `query:"page"`
		Limit  int    `query:"limit"`
		Search string `query:"search"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	page, err := h.users.AdminList(c.Request().Context(), ports.ListUsersFilter{
		Page:   req.Page,
		Limit:  req.Limit,
		Search: req.Search,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// UpdateUser patches an account's profile, role or active flag.
//
// @Summary      Update an account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "User ID"
// @Param        body  body      adminUpdateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	admin, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req adminUpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.AdminUpdate(c.Request().Context(), ports.AdminUpdateUserInput{
		ActorID:   admin.ID,
		UserID:    id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		IsActive:  req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account and everything it owns.
//
// @Summary      Delete an account
// @Tags         admin
// @Param        id  path  int  true  "User ID"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	admin, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.users.AdminDelete(c.Request().Context(), admin.ID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
