package domain

import "time"

// VoteType is the direction of a vote.
type VoteType string

const (
	VoteUp   VoteType = "UPVOTE"
	VoteDown VoteType = "DOWNVOTE"
)

// Valid reports whether t is one of the two known vote types.
func (t VoteType) Valid() bool {
	return t == VoteUp || t == VoteDown
}

// Vote records a single user's vote on exactly one target: either a question
// or an answer, never both. The composite unique indexes make the
// one-vote-per-(user,target) invariant hold at the storage layer, so a racing
// duplicate insert fails instead of creating a second row. Postgres treats
// NULLs as distinct, so rows for the other target kind never collide.
type Vote struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userId" gorm:"not null;uniqueIndex:uq_vote_user_question;uniqueIndex:uq_vote_user_answer"`
	QuestionID *uint     `json:"questionId" gorm:"uniqueIndex:uq_vote_user_question"`
	AnswerID   *uint     `json:"answerId" gorm:"uniqueIndex:uq_vote_user_answer"`
	Type       VoteType  `json:"type" gorm:"size:16;not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// VoteTarget identifies what a vote is attached to.
type VoteTarget string

const (
	TargetQuestion VoteTarget = "question"
	TargetAnswer   VoteTarget = "answer"
)
