package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stackit/qna-api/internal/core/domain"
	"github.com/stackit/qna-api/internal/core/ports"
)

// ScheduleGuard abstracts the scheduling idempotency store (Redis). It closes
// the window between a job being enqueued and the bot's answer existing, in
// which a second trigger would otherwise schedule a duplicate job.
type ScheduleGuard interface {
	IsScheduled(ctx context.Context, questionID uint) (bool, error)
	MarkScheduled(ctx context.Context, questionID uint) error
}

// AIService implements the auto-answer pipeline: a heuristic gate, duplicate
// guards, and a deferred generation job persisting an answer authored by the
// designated bot account.
type AIService struct {
	questions ports.QuestionRepository
	answers   ports.AnswerRepository
	users     ports.UserRepository
	generator ports.AnswerGenerator
	guard     ScheduleGuard
	notifier  *NotificationEmitter
	scheduler ports.AIScheduler
	botEmail  string
	log       zerolog.Logger
}

func NewAIService(
	questions ports.QuestionRepository,
	answers ports.AnswerRepository,
	users ports.UserRepository,
	generator ports.AnswerGenerator,
	guard ScheduleGuard,
	notifier *NotificationEmitter,
	botEmail string,
	log zerolog.Logger,
) *AIService {
	return &AIService{
		questions: questions,
		answers:   answers,
		users:     users,
		generator: generator,
		guard:     guard,
		notifier:  notifier,
		botEmail:  botEmail,
		log:       log,
	}
}

// AttachScheduler wires the deferred-job scheduler. The scheduler itself runs
// RunJob, so the two are constructed first and bound afterwards.
func (s *AIService) AttachScheduler(sched ports.AIScheduler) {
	s.scheduler = sched
}

// Generate gates the question and either answers it inline (Delay == 0) or
// schedules a background job. Every outcome other than an infrastructure
// failure is a non-error result; the caller decides how to render skips.
func (s *AIService) Generate(ctx context.Context, in ports.GenerateAnswerInput) (*ports.GenerateAnswerResult, error) {
	question, err := s.questions.FindSummary(ctx, in.QuestionID)
	if err != nil {
		return nil, err
	}

	bot, err := s.bot(ctx)
	if err != nil {
		return nil, err
	}

	if !s.generator.ShouldAnswer(question.Title, question.Description) {
		return &ports.GenerateAnswerResult{Status: ports.AISkippedHeuristic, QuestionID: question.ID}, nil
	}

	if existing, err := s.answers.FindByQuestionAndAuthor(ctx, question.ID, bot.ID); err == nil {
		return &ports.GenerateAnswerResult{
			Status:     ports.AIAlreadyAnswered,
			QuestionID: question.ID,
			AnswerID:   existing.ID,
		}, nil
	} else if !errors.Is(err, domain.ErrAnswerNotFound) {
		return nil, fmt.Errorf("ai generate: duplicate check: %w", err)
	}

	if in.Delay <= 0 {
		answer, err := s.generateAndSave(ctx, question, bot)
		if err != nil {
			return nil, err
		}
		return &ports.GenerateAnswerResult{
			Status:     ports.AIGenerated,
			QuestionID: question.ID,
			AnswerID:   answer.ID,
		}, nil
	}

	scheduled, err := s.guard.IsScheduled(ctx, question.ID)
	if err != nil {
		s.log.Warn().Err(err).Uint("question_id", question.ID).Msg("schedule guard check failed, scheduling anyway")
	} else if scheduled {
		s.log.Debug().Uint("question_id", question.ID).Msg("generation already scheduled, skipping")
		return &ports.GenerateAnswerResult{Status: ports.AIScheduled, QuestionID: question.ID, Delay: in.Delay}, nil
	}

	if err := s.guard.MarkScheduled(ctx, question.ID); err != nil {
		s.log.Warn().Err(err).Uint("question_id", question.ID).Msg("failed to set schedule guard key")
	}

	s.scheduler.Schedule(question.ID, in.Delay)
	return &ports.GenerateAnswerResult{Status: ports.AIScheduled, QuestionID: question.ID, Delay: in.Delay}, nil
}

// RunJob is the deferred job body. Everything Generate checked is re-validated
// here: the question may have been deleted and a retried or duplicate job must
// not produce a second bot answer. A missing question aborts silently.
func (s *AIService) RunJob(ctx context.Context, questionID uint) error {
	question, err := s.questions.FindSummary(ctx, questionID)
	if err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			s.log.Debug().Uint("question_id", questionID).Msg("question gone before generation, aborting")
			return nil
		}
		return fmt.Errorf("ai job: load question: %w", err)
	}

	bot, err := s.bot(ctx)
	if err != nil {
		return err
	}

	if !s.generator.ShouldAnswer(question.Title, question.Description) {
		s.log.Debug().Uint("question_id", questionID).Msg("question no longer suitable, skipping")
		return nil
	}

	if _, err := s.answers.FindByQuestionAndAuthor(ctx, question.ID, bot.ID); err == nil {
		s.log.Debug().Uint("question_id", questionID).Msg("bot answer already exists, skipping")
		return nil
	} else if !errors.Is(err, domain.ErrAnswerNotFound) {
		return fmt.Errorf("ai job: duplicate check: %w", err)
	}

	if _, err := s.generateAndSave(ctx, question, bot); err != nil {
		return err
	}
	return nil
}

func (s *AIService) generateAndSave(ctx context.Context, question *domain.Question, bot *domain.User) (*domain.Answer, error) {
	content, err := s.generator.Generate(ctx, question.Title, question.Description)
	if err != nil {
		return nil, fmt.Errorf("ai generate: %w", err)
	}

	answer := &domain.Answer{
		Content:    content,
		AuthorID:   bot.ID,
		QuestionID: question.ID,
	}
	if err := s.answers.Create(ctx, answer); err != nil {
		return nil, fmt.Errorf("ai generate: save answer: %w", err)
	}

	// The bot never asks questions, but guard anyway. The pipeline keeps
	// going on a failed notification write; the generated answer already
	// exists and there is no caller to surface the error to.
	if question.AuthorID != bot.ID {
		if err := s.notifier.AIAnswered(ctx, question, answer.ID); err != nil {
			s.log.Warn().Err(err).Uint("question_id", question.ID).Msg("ai answer notification failed")
		}
	}

	s.log.Info().
		Uint("question_id", question.ID).
		Uint("answer_id", answer.ID).
		Msg("ai answer generated")

	return answer, nil
}

func (s *AIService) bot(ctx context.Context) (*domain.User, error) {
	bot, err := s.users.FindByEmail(ctx, s.botEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrBotMissing
		}
		return nil, fmt.Errorf("ai: load bot account: %w", err)
	}
	return bot, nil
}
