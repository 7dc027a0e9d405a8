package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stackit/qna-api/internal/core/ports"
)

// NotificationHandler lists and updates the caller's notifications.
type NotificationHandler struct {
	notifications ports.NotificationService
}

func NewNotificationHandler(notifications ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type markReadRequest struct {
	NotificationIDs []uint `json:"notificationIds"`
	MarkAll         bool   `json:"markAll"`
}

type markReadResponse struct {
	UpdatedCount int64 `json:"updatedCount"`
}

// List returns a page of the caller's notifications, newest first.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Param        page        query     int   false  "Page (1-based)"
// @Param        limit       query     int   false  "Page size (max 50)"
// @Param        unreadOnly  query     bool  false  "Only unread rows"
// @Success      200         {object}  ports.NotificationPage
// @Failure      401         {object}  errorResponse
// @Router       /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req struct {
		Page       int  `query:"page"`
		Limit      int  `query:"limit"`
		UnreadOnly bool `query:"unreadOnly"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	page, err := h.notifications.List(c.Request().Context(), user.ID, req.UnreadOnly, req.Page, req.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// MarkRead flags selected notifications (or all of them) as read.
//
// @Summary      Mark notifications read
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        body  body      markReadRequest  true  "IDs to mark, or markAll"
// @Success      200   {object}  markReadResponse
// @Failure      400   {object}  errorResponse
// @Router       /notifications [patch]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req markReadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if !req.MarkAll && len(req.NotificationIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "either notificationIds or markAll must be provided")
	}

	updated, err := h.notifications.MarkRead(c.Request().Context(), ports.MarkReadInput{
		UserID:  user.ID,
		IDs:     req.NotificationIDs,
		MarkAll: req.MarkAll,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, markReadResponse{UpdatedCount: updated})
}
