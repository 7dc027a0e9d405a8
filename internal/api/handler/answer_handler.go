package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stackit/qna-api/internal/api/metrics"
	"github.com/stackit/qna-api/internal/core/ports"
)

// AnswerHandler handles answering and the acceptance workflow.
type AnswerHandler struct {
	answers ports.AnswerService
}

func NewAnswerHandler(answers ports.AnswerService) *AnswerHandler {
	return &AnswerHandler{answers: answers}
}

type createAnswerRequest struct {
	QuestionID uint   `json:"questionId" validate:"required"`
	Content    string `json:"content" validate:"required,min=20"`
}

// Create posts an answer to a question.
//
// @Summary      Answer a question
// @Tags         answers
// @Accept       json
// @Produce      json
// @Param        body  body      createAnswerRequest  true  "Answer details"
// @Success      201   {object}  ports.AnswerView
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /answers [post]
func (h *AnswerHandler) Create(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req createAnswerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	view, err := h.answers.Create(c.Request().Context(), ports.CreateAnswerInput{
		AuthorID:   user.ID,
		QuestionID: req.QuestionID,
		Content:    req.Content,
	})
	if err != nil {
		return err
	}

	metrics.AnswersCreatedTotal.WithLabelValues("human").Inc()
	return c.JSON(http.StatusCreated, view)
}

// Accept marks an answer as its question's accepted answer.
//
// @Summary      Accept an answer
// @Tags         answers
// @Produce      json
// @Param        id   path      int  true  "Answer ID"
// @Success      200  {object}  ports.AnswerView
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /answers/{id}/accept [patch]
func (h *AnswerHandler) Accept(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	view, err := h.answers.Accept(c.Request().Context(), user.ID, id)
	if err != nil {
		return err
	}

	metrics.AnswersAcceptedTotal.Inc()
	return c.JSON(http.StatusOK, view)
}
