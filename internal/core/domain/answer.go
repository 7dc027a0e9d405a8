package domain

import "time"

// Answer belongs to exactly one question. At most one answer per question may
// carry IsAccepted=true; the acceptance workflow moves the flag atomically.
type Answer struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	AuthorID   uint      `json:"authorId" gorm:"not null;index"`
	Author     *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	QuestionID uint      `json:"questionId" gorm:"not null;index"`
	IsAccepted bool      `json:"isAccepted" gorm:"not null;default:false"`
	Votes      []Vote    `json:"-" gorm:"foreignKey:AnswerID"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
