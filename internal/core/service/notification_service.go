package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stackit/qna-api/internal/core/domain"
	"github.com/stackit/qna-api/internal/core/ports"
)

const (
	defaultNotificationLimit = 10
	maxNotificationLimit     = 50
)

// NotificationEmitter is the append-only side-effect writer the content
// workflows call on state changes. The write runs after the triggering
// mutation has committed, so a failed write surfaces as an error without
// undoing the change. Delivery is at-most-once.
type NotificationEmitter struct {
	notifications ports.NotificationRepository
	log           zerolog.Logger
}

func NewNotificationEmitter(notifications ports.NotificationRepository, log zerolog.Logger) *NotificationEmitter {
	return &NotificationEmitter{notifications: notifications, log: log}
}

// QuestionAnswered notifies the question author that someone answered.
func (e *NotificationEmitter) QuestionAnswered(ctx context.Context, q *domain.Question, answerer *domain.User) error {
	return e.emit(ctx, &domain.Notification{
		UserID:     q.AuthorID,
		Type:       domain.NotificationQuestionAnswered,
		Title:      "Your question has been answered",
		Message:    fmt.Sprintf("%s answered your question: %q", answerer.FullName(), q.Title),
		EntityType: domain.EntityQuestion,
		EntityID:   q.ID,
	})
}

// AIAnswered notifies the question author about a generated answer.
func (e *NotificationEmitter) AIAnswered(ctx context.Context, q *domain.Question, answerID uint) error {
	return e.emit(ctx, &domain.Notification{
		UserID:     q.AuthorID,
		Type:       domain.NotificationQuestionAnswered,
		Title:      "AI Assistant answered your question",
		Message:    fmt.Sprintf("AI Assistant has provided an answer to your question: %q", q.Title),
		EntityType: domain.EntityAnswer,
		EntityID:   answerID,
	})
}

// AnswerAccepted notifies the answer author that their answer was accepted.
func (e *NotificationEmitter) AnswerAccepted(ctx context.Context, q *domain.Question, a *domain.Answer, acceptor *domain.User) error {
	return e.emit(ctx, &domain.Notification{
		UserID:     a.AuthorID,
		Type:       domain.NotificationAnswerAccepted,
		Title:      "Your answer has been accepted",
		Message:    fmt.Sprintf("%s accepted your answer to: %q", acceptor.FullName(), q.Title),
		EntityType: domain.EntityQuestion,
		EntityID:   q.ID,
	})
}

func (e *NotificationEmitter) emit(ctx context.Context, n *domain.Notification) error {
	if err := e.notifications.Create(ctx, n); err != nil {
		e.log.Warn().Err(err).
			Uint("user_id", n.UserID).
			Str("type", n.Type).
			Msg("notification write failed")
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// NotificationService lists and updates a user's notifications.
type NotificationService struct {
	notifications ports.NotificationRepository
}

func NewNotificationService(notifications ports.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) List(ctx context.Context, userID uint, unreadOnly bool, page, limit int) (*ports.NotificationPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}

	rows, total, unread, err := s.notifications.ListByUser(ctx, userID, unreadOnly, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return &ports.NotificationPage{
		Notifications: rows,
		Pagination:    paginate(page, limit, total),
		UnreadCount:   unread,
	}, nil
}

// MarkRead flips the read flag on the selected notifications, restricted to
// rows the user owns.
func (s *NotificationService) MarkRead(ctx context.Context, in ports.MarkReadInput) (int64, error) {
	if in.MarkAll {
		return s.notifications.MarkAllRead(ctx, in.UserID)
	}
	return s.notifications.MarkRead(ctx, in.UserID, in.IDs)
}
