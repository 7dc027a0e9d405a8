package ports

import (
	"context"

	"github.com/stackit/qna-api/internal/core/domain"
)

// AnswerRepository defines persistence operations for answers.
type AnswerRepository interface {
	Create(ctx context.Context, a *domain.Answer) error
	// FindByID loads an answer with its author and its question (question
	// author included). Returns ErrAnswerNotFound when the row is missing.
	FindByID(ctx context.Context, id uint) (*domain.Answer, error)
	// FindByQuestionAndAuthor returns the author's answer on a question, or
	// ErrAnswerNotFound. Used as the AI pipeline's idempotence guard.
	FindByQuestionAndAuthor(ctx context.Context, questionID, authorID uint) (*domain.Answer, error)
	// Accept atomically clears the accepted flag on any previously accepted
	// answer of the question, sets it on answerID, and points the question's
	// accepted_answer_id at answerID. All three mutations happen in a single
	// transaction so the at-most-one-accepted invariant can never be observed
	// broken.
	Accept(ctx context.Context, questionID, answerID uint) error
}

// VoteRepository defines persistence operations for votes. Uniqueness of
// (user, target) is enforced by database constraints; Create surfaces a
// constraint violation as domain.ErrDuplicateVote.
type VoteRepository interface {
	Find(ctx context.Context, userID uint, target domain.VoteTarget, targetID uint) (*domain.Vote, error)
	Create(ctx context.Context, v *domain.Vote) error
	UpdateType(ctx context.Context, voteID uint, t domain.VoteType) error
	Delete(ctx context.Context, voteID uint) error
	// Score returns count(UPVOTE) - count(DOWNVOTE) for the target.
	Score(ctx context.Context, target domain.VoteTarget, targetID uint) (int, error)
}

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	// ListByUser returns a page of the user's notifications (newest first),
	// the total count for the filter, and the user's overall unread count.
	ListByUser(ctx context.Context, userID uint, unreadOnly bool, page, limit int) ([]*domain.Notification, int64, int64, error)
	// MarkRead flags the given notifications read, restricted to rows owned by
	// userID, and returns how many rows changed.
	MarkRead(ctx context.Context, userID uint, ids []uint) (int64, error)
	// MarkAllRead flags every unread notification of the user as read.
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}
