package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stackit/qna-api/internal/api/metrics"
	"github.com/stackit/qna-api/internal/core/ports"
)

const defaultGenerateDelayMs = 5000

// AIHandler triggers the auto-answer pipeline on demand.
type AIHandler struct {
	ai ports.AIService
}

func NewAIHandler(ai ports.AIService) *AIHandler {
	return &AIHandler{ai: ai}
}

type generateAnswerRequest struct {
	QuestionID uint `json:"questionId" validate:"required"`
	// DelayMs defers generation; nil uses the default, 0 runs inline.
	DelayMs *int `json:"delayMs" validate:"omitempty,min=0,max=300000"`
}

type generateAnswerResponse struct {
	Status     string `json:"status"`
	QuestionID uint   `json:"questionId"`
	AnswerID   uint   `json:"answerId,omitempty"`
	DelayMs    int    `json:"delayMs,omitempty"`
}

// Generate asks the bot to answer a question, now or after a delay.
//
// @Summary      Trigger AI answer generation
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body      generateAnswerRequest  true  "Target question and optional delay"
// @Success      200   {object}  generateAnswerResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /ai/generate-answer [post]
func (h *AIHandler) Generate(c echo.Context) error {
	var req generateAnswerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	delayMs := defaultGenerateDelayMs
	if req.DelayMs != nil {
		delayMs = *req.DelayMs
	}

	res, err := h.ai.Generate(c.Request().Context(), ports.GenerateAnswerInput{
		QuestionID: req.QuestionID,
		Delay:      time.Duration(delayMs) * time.Millisecond,
	})
	if err != nil {
		return err
	}
	if res.Status == ports.AIGenerated {
		metrics.AnswersCreatedTotal.WithLabelValues("ai").Inc()
	}

	return c.JSON(http.StatusOK, generateAnswerResponse{
		Status:     res.Status,
		QuestionID: res.QuestionID,
		AnswerID:   res.AnswerID,
		DelayMs:    int(res.Delay / time.Millisecond),
	})
}
