package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stackit/qna-api/internal/core/domain"
	"github.com/stackit/qna-api/internal/core/ports"
)

// AnswerService implements answering and the acceptance workflow.
type AnswerService struct {
	answers   ports.AnswerRepository
	questions ports.QuestionRepository
	users     ports.UserRepository
	notifier  *NotificationEmitter
	log       zerolog.Logger
}

func NewAnswerService(
	answers ports.AnswerRepository,
	questions ports.QuestionRepository,
	users ports.UserRepository,
	notifier *NotificationEmitter,
	log zerolog.Logger,
) *AnswerService {
	return &AnswerService{
		answers:   answers,
		questions: questions,
		users:     users,
		notifier:  notifier,
		log:       log,
	}
}

// Create persists the answer and notifies the question author, unless the
// answerer is answering their own question. A failed notification write
// surfaces as an error after the answer is already stored.
func (s *AnswerService) Create(ctx context.Context, in ports.CreateAnswerInput) (*ports.AnswerView, error) {
	question, err := s.questions.FindSummary(ctx, in.QuestionID)
	if err != nil {
		return nil, err
	}

	author, err := s.users.FindByID(ctx, in.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("create answer: load author: %w", err)
	}

	answer := &domain.Answer{
		Content:    in.Content,
		AuthorID:   in.AuthorID,
		QuestionID: question.ID,
		Author:     author,
	}
	if err := s.answers.Create(ctx, answer); err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}

	if question.AuthorID != in.AuthorID {
		if err := s.notifier.QuestionAnswered(ctx, question, author); err != nil {
			return nil, fmt.Errorf("create answer: %w", err)
		}
	}

	s.log.Info().
		Uint("answer_id", answer.ID).
		Uint("question_id", question.ID).
		Uint("author_id", in.AuthorID).
		Msg("answer created")

	view := answerView(answer, in.AuthorID)
	return &view, nil
}

// Accept marks answerID as its question's single accepted answer. Only the
// question's author may accept. The three mutations (clear old flag, set new
// flag, repoint the question) run in one repository transaction, so a partial
// state is never visible and re-accepting simply moves the marker.
func (s *AnswerService) Accept(ctx context.Context, actorID, answerID uint) (*ports.AnswerView, error) {
	answer, err := s.answers.FindByID(ctx, answerID)
	if err != nil {
		return nil, err
	}

	question, err := s.questions.FindSummary(ctx, answer.QuestionID)
	if err != nil {
		return nil, err
	}
	if question.AuthorID != actorID {
		return nil, domain.ErrForbidden
	}

	if err := s.answers.Accept(ctx, question.ID, answer.ID); err != nil {
		return nil, fmt.Errorf("accept answer: %w", err)
	}
	answer.IsAccepted = true

	if answer.AuthorID != actorID {
		actor, err := s.users.FindByID(ctx, actorID)
		if err != nil {
			return nil, fmt.Errorf("accept answer: load actor: %w", err)
		}
		if err := s.notifier.AnswerAccepted(ctx, question, answer, actor); err != nil {
			return nil, fmt.Errorf("accept answer: %w", err)
		}
	}

	s.log.Info().
		Uint("answer_id", answer.ID).
		Uint("question_id", question.ID).
		Uint("actor_id", actorID).
		Msg("answer accepted")

	view := answerView(answer, actorID)
	return &view, nil
}
