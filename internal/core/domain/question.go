package domain

import "time"

// Question is the root content entity. AcceptedAnswerID is nil until the
// author accepts an answer; when set it must reference an answer that belongs
// to this question (enforced by the acceptance workflow's transaction).
type Question struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Title            string    `json:"title" gorm:"size:200;not null"`
	Description      string    `json:"description" gorm:"type:text;not null"`
	AuthorID         uint      `json:"authorId" gorm:"not null;index"`
	Author           *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	AcceptedAnswerID *uint     `json:"acceptedAnswerId"`
	Tags             []Tag     `json:"tags,omitempty" gorm:"many2many:question_tags"`
	Answers          []Answer  `json:"answers,omitempty" gorm:"foreignKey:QuestionID"`
	Votes            []Vote    `json:"-" gorm:"foreignKey:QuestionID"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
