package ports

import (
	"context"
	"time"
)

// Outcomes of an AI generation request.
const (
	AIScheduled        = "SCHEDULED"
	AIGenerated        = "GENERATED"
	AISkippedHeuristic = "SKIPPED_BY_HEURISTICS"
	AIAlreadyAnswered  = "ALREADY_ANSWERED"
)

// GenerateAnswerInput triggers the AI pipeline for one question.
type GenerateAnswerInput struct {
	QuestionID uint
	// Delay defers generation to a background job. Zero runs synchronously.
	Delay time.Duration
}

// GenerateAnswerResult reports what the pipeline decided.
type GenerateAnswerResult struct {
	Status     string        `json:"status"`
	QuestionID uint          `json:"questionId"`
	AnswerID   uint          `json:"answerId,omitempty"`
	Delay      time.Duration `json:"-"`
}

// AIService implements the auto-answer pipeline.
type AIService interface {
	// Generate gates the question, guards against duplicate bot answers, and
	// either runs generation inline (Delay == 0) or schedules a background job.
	Generate(ctx context.Context, in GenerateAnswerInput) (*GenerateAnswerResult, error)
	// RunJob is the deferred job body. It re-validates everything Generate
	// checked (the question may have vanished or been answered meanwhile),
	// persists the bot's answer and notifies the question author. It is
	// best-effort: callers log its error and move on.
	RunJob(ctx context.Context, questionID uint) error
}

// AnswerGenerator is the external content-generation collaborator.
type AnswerGenerator interface {
	// ShouldAnswer is the heuristic gate over title and description.
	ShouldAnswer(title, description string) bool
	// Generate produces the answer body for a question.
	Generate(ctx context.Context, title, description string) (string, error)
}

// AIScheduler defers a generation job. Implementations must return
// immediately; the job runs out-of-band and its failure is invisible to the
// scheduling caller.
type AIScheduler interface {
	Schedule(questionID uint, delay time.Duration)
}
