package ports

import (
	"context"

	"github.com/stackit/qna-api/internal/core/domain"
)

// CreateAnswerInput carries the data needed to post an answer.
type CreateAnswerInput struct {
	AuthorID   uint
	QuestionID uint
	Content    string
}

// AnswerService implements answering and the acceptance workflow.
type AnswerService interface {
	// Create persists the answer and notifies the question author unless the
	// answerer is answering their own question.
	Create(ctx context.Context, in CreateAnswerInput) (*AnswerView, error)
	// Accept marks answerID as the question's accepted answer. Only the
	// question's author may accept (domain.ErrForbidden otherwise). Re-running
	// on a different answer moves the accepted marker.
	Accept(ctx context.Context, actorID, answerID uint) (*AnswerView, error)
}

// VoteAction describes what casting a vote did.
type VoteAction string

const (
	VoteCreated VoteAction = "created"
	VoteUpdated VoteAction = "updated"
	VoteRemoved VoteAction = "removed"
)

// CastVoteInput carries one vote request. Exactly one of QuestionID/AnswerID
// is non-zero (the handler validates this).
type CastVoteInput struct {
	UserID     uint
	QuestionID uint
	AnswerID   uint
	Type       domain.VoteType
}

// VoteResult reports the outcome of a vote toggle.
type VoteResult struct {
	Action VoteAction       `json:"action"`
	Type   *domain.VoteType `json:"type"`
	Score  int              `json:"score"`
}

// VoteService implements the voting engine.
type VoteService interface {
	// Cast creates, flips or removes the caller's vote on the target.
	// Self-votes fail with domain.ErrSelfVote, missing targets with the
	// target's not-found error.
	Cast(ctx context.Context, in CastVoteInput) (*VoteResult, error)
}

// NotificationPage is one page of a user's notifications.
type NotificationPage struct {
	Notifications []*domain.Notification `json:"notifications"`
	Pagination    Pagination             `json:"pagination"`
	UnreadCount   int64                  `json:"unreadCount"`
}

// MarkReadInput selects which notifications to flag as read.
type MarkReadInput struct {
	UserID  uint
	IDs     []uint
	MarkAll bool
}

// NotificationService lists and updates a user's notifications.
type NotificationService interface {
	List(ctx context.Context, userID uint, unreadOnly bool, page, limit int) (*NotificationPage, error)
	// MarkRead returns the number of notifications actually updated.
	MarkRead(ctx context.Context, in MarkReadInput) (int64, error)
}
