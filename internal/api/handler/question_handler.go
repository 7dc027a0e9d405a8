package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stackit/qna-api/internal/api/metrics"
	"github.com/stackit/qna-api/internal/core/ports"
)

// QuestionHandler handles HTTP requests for question operations.
type QuestionHandler struct {
	questions ports.QuestionService
}

func NewQuestionHandler(questions ports.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

type listQuestionsRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
	Tag    string `query:"tag"`
	Sort   string `query:"sort" validate:"omitempty,oneof=newest oldest most_voted most_answers"`
}

type createQuestionRequest struct {
	Title       string   `json:"title" validate:"required,min=10,max=200"`
	Description string   `json:"description" validate:"required,min=20"`
	Tags        []string `json:"tags" validate:"required,min=1,max=5,dive,required"`
}

// List returns a page of question summaries.
//
// @Summary      List questions
// @Tags         questions
// @Produce      json
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 50)"
// @Param        search  query     string  false  "Match against title or description"
// @Param        tag     query     string  false  "Filter by tag name"
// @Param        sort    query     string  false  "newest | oldest | most_voted | most_answers"
// @Success      200     {object}  ports.QuestionPage
// @Router       /questions [get]
func (h *QuestionHandler) List(c echo.Context) error {
	var req listQuestionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	page, err := h.questions.List(c.Request().Context(), ports.ListQuestionsFilter{
		Search: req.Search,
		Tag:    req.Tag,
		Sort:   req.Sort,
		Page:   req.Page,
		Limit:  req.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get returns the full question detail, vote state resolved for the caller.
//
// @Summary      Get a question
// @Tags         questions
// @Produce      json
// @Param        id   path      int  true  "Question ID"
// @Success      200  {object}  ports.QuestionDetail
// @Failure      404  {object}  errorResponse
// @Router       /questions/{id} [get]
func (h *QuestionHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.questions.Get(c.Request().Context(), id, viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// Create posts a new question and schedules the AI answer attempt.
//
// @Summary      Create a question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        body  body      createQuestionRequest  true  "Question details"
// @Success      201   {object}  ports.QuestionSummary
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /questions [post]
func (h *QuestionHandler) Create(c echo.Context) error {
	user, err := actor(c)
	if err != nil {
		return err
	}

	var req createQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	summary, err := h.questions.Create(c.Request().Context(), ports.CreateQuestionInput{
		AuthorID:    user.ID,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		return err
	}

	metrics.QuestionsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, summary)
}
