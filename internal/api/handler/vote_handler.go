package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stackit/qna-api/internal/api/metrics"
	"github.com/stackit/qna-api/internal/core/domain"
	"github.com/stackit/qna-api/internal/core/ports"
)

// VoteHandler handles vote toggling on questions and answers.
type VoteHandler struct {
	votes ports.VoteService
}

func NewVoteHandler(votes ports.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

type castVoteRequest struct {
	Type       domain.VoteType `json:"type" validate:"required,oneof=UPVOTE DOWNVOTE"`
	QuestionID uint            `json:"questionId"`
	AnswerID   uint            `json:"answerId"`
}

// Cast toggles the caller's vote on exactly one target.
//
// @Summary      Cast, flip or remove a vote
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        body  body      castVoteRequest  true  "Vote: exactly one of questionId/answerId"
// @Success      200   {object}  ports.VoteResult
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /votes [post]
func (h *VoteHandler) Cast(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req castVoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Exactly one target: never both, never neither.
	if (req.QuestionID == 0) == (req.AnswerID == 0) {
		return echo.NewHTTPError(http.StatusBadRequest, "exactly one of questionId or answerId must be provided")
	}

	result, err := h.votes.Cast(c.Request().Context(), ports.CastVoteInput{
		UserID:     user.ID,
		QuestionID: req.QuestionID,
		AnswerID:   req.AnswerID,
		Type:       req.Type,
	})
	if err != nil {
		return err
	}

	voteType := "none"
	if result.Type != nil {
		voteType = string(*result.Type)
	}
	metrics.VotesCastTotal.WithLabelValues(string(result.Action), voteType).Inc()

	return c.JSON(http.StatusOK, result)
}
