package ports

import (
	"context"

	"github.com/stackit/qna-api/internal/core/domain"
)

// Question sort orders accepted by the list endpoint.
const (
	SortNewest      = "newest"
	SortOldest      = "oldest"
	SortMostVoted   = "most_voted"
	SortMostAnswers = "most_answers"
)

// ListQuestionsFilter carries all query parameters for listing questions.
type ListQuestionsFilter struct {
	Search string // optional: partial match on title or description
	Tag    string // optional: normalized tag name
	Sort   string // one of the Sort* constants; empty means newest
	Page   int    // 1-based
	Limit  int    // max rows per page (capped at 50 by the service)
}

// QuestionRepository defines persistence operations for questions.
type QuestionRepository interface {
	// Create inserts the question together with its tag associations.
	Create(ctx context.Context, q *domain.Question) error
	// FindByID loads a question with author, tags, answers (authors and votes
	// included) and the question's own votes. Returns ErrQuestionNotFound when
	// the row is missing.
	FindByID(ctx context.Context, id uint) (*domain.Question, error)
	// FindSummary loads only the question row itself, without associations.
	FindSummary(ctx context.Context, id uint) (*domain.Question, error)
	// List returns a page of questions (author, tags, answer flags and votes
	// preloaded) matching filter, plus the total count.
	List(ctx context.Context, filter ListQuestionsFilter) ([]*domain.Question, int64, error)
}

// TagRepository defines persistence operations for tags.
type TagRepository interface {
	// UpsertByName finds or creates a tag under its normalized name.
	UpsertByName(ctx context.Context, name string) (*domain.Tag, error)
	// List returns tags ordered by name with the number of questions using each.
	List(ctx context.Context, search string, limit int) ([]TagWithCount, error)
}

// TagWithCount pairs a tag with its usage count.
type TagWithCount struct {
	Tag           domain.Tag
	QuestionCount int64
}
