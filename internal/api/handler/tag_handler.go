package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stackit/qna-api/internal/core/ports"
)

// TagHandler serves the public tag directory.
type TagHandler struct {
	tags ports.TagService
}

func NewTagHandler(tags ports.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

type tagResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Color         string `json:"color"`
	QuestionCount int64  `json:"questionCount"`
}

// List returns tags ordered by name with usage counts.
//
// @Summary      List tags
// @Tags         tags
// @Produce      json
// @Param        search  query     string  false  "Partial tag name"
// @Param        limit   query     int     false  "Max rows (max 100)"
// @Success      200     {array}   tagResponse
// @Router       /tags [get]
func (h *TagHandler) List(c echo.Context) error {
	var req struct {
		Search string `query:"search"`
		Limit  int    `query:"limit"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	tags, err := h.tags.List(c.Request().Context(), req.Search, req.Limit)
	if err != nil {
		return err
	}

	out := make([]tagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, tagResponse{
			ID:            t.Tag.ID,
			Name:          t.Tag.Name,
			Description:   t.Tag.Description,
			Color:         t.Tag.Color,
			QuestionCount: t.QuestionCount,
		})
	}
	return c.JSON(http.StatusOK, out)
}
