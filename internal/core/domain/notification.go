package domain

import "time"

// Notification types emitted by the content workflows.
const (
	NotificationQuestionAnswered = "QUESTION_ANSWERED"
	NotificationAnswerAccepted   = "ANSWER_ACCEPTED"
)

// Entity kinds a notification can point at.
const (
	EntityQuestion = "question"
	EntityAnswer   = "answer"
)

// Notification is an append-only per-user event record; only IsRead mutates
// after creation. Delivery is best-effort, at-most-once.
type Notification struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userId" gorm:"not null;index"`
	Type       string    `json:"type" gorm:"size:32;not null"`
	Title      string    `json:"title" gorm:"size:255;not null"`
	Message    string    `json:"message" gorm:"type:text"`
	EntityType string    `json:"entityType" gorm:"size:16"`
	EntityID   uint      `json:"entityId"`
	IsRead     bool      `json:"isRead" gorm:"not null;default:false;index"`
	CreatedAt  time.Time `json:"createdAt"`
}
