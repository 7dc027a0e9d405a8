package ports

import (
	"context"
	"time"

	"github.com/stackit/qna-api/internal/core/domain"
)

// UserRef is the author projection embedded in content responses.
type UserRef struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// QuestionSummary is the list-view projection of a question.
type QuestionSummary struct {
	ID                uint         `json:"id"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Author            UserRef      `json:"author"`
	Tags              []domain.Tag `json:"tags"`
	AnswerCount       int          `json:"answerCount"`
	VoteScore         int          `json:"voteScore"`
	HasAcceptedAnswer bool         `json:"hasAcceptedAnswer"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// AnswerView is the projection of an answer inside a question detail.
type AnswerView struct {
	ID         uint             `json:"id"`
	Content    string           `json:"content"`
	Author     UserRef          `json:"author"`
	IsAccepted bool             `json:"isAccepted"`
	VoteScore  int              `json:"voteScore"`
	UserVote   *domain.VoteType `json:"userVote"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// QuestionDetail is the full question view, vote state resolved for the viewer.
type QuestionDetail struct {
	QuestionSummary
	Answers  []AnswerView     `json:"answers"`
	UserVote *domain.VoteType `json:"userVote"`
	CanEdit  bool             `json:"canEdit"`
}

// Pagination describes a page within a larger result set.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// QuestionPage is one page of question summaries.
type QuestionPage struct {
	Questions  []QuestionSummary `json:"questions"`
	Pagination Pagination        `json:"pagination"`
}

// CreateQuestionInput carries the data needed to post a question.
type CreateQuestionInput struct {
	AuthorID    uint
	Title       string
	Description string
	Tags        []string
}

// QuestionService implements question listing, reading and creation.
type QuestionService interface {
	List(ctx context.Context, filter ListQuestionsFilter) (*QuestionPage, error)
	// Get returns the question detail. viewerID 0 means anonymous: UserVote is
	// nil and CanEdit false.
	Get(ctx context.Context, id, viewerID uint) (*QuestionDetail, error)
	// Create persists the question with normalized, upserted tags and schedules
	// an AI answer attempt with a randomized delay. Scheduling never fails the
	// creation.
	Create(ctx context.Context, in CreateQuestionInput) (*QuestionSummary, error)
}

// TagService lists tags for the public tag directory.
type TagService interface {
	List(ctx context.Context, search string, limit int) ([]TagWithCount, error)
}
