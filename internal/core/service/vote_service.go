package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stackit/qna-api/internal/core/domain"
	"github.com/stackit/qna-api/internal/core/ports"
)

// VoteService implements the toggle semantics of the voting engine.
type VoteService struct {
	votes     ports.VoteRepository
	questions ports.QuestionRepository
	answers   ports.AnswerRepository
	log       zerolog.Logger
}

func NewVoteService(
	votes ports.VoteRepository,
	questions ports.QuestionRepository,
	answers ports.AnswerRepository,
	log zerolog.Logger,
) *VoteService {
	return &VoteService{votes: votes, questions: questions, answers: answers, log: log}
}

// Cast applies one vote request:
//   - no existing vote on the target  -> create it
//   - existing vote of the same type  -> remove it (toggle off)
//   - existing vote of the other type -> flip it in place
//
// The score is never stored; it is recomputed from the vote rows after the
// mutation. A racing duplicate insert loses against the (user, target) unique
// constraint and is reported as a conflict instead of creating a second row.
func (s *VoteService) Cast(ctx context.Context, in ports.CastVoteInput) (*ports.VoteResult, error) {
	target, targetID, authorID, err := s.resolveTarget(ctx, in)
	if err != nil {
		return nil, err
	}

	if authorID == in.UserID {
		return nil, domain.ErrSelfVote
	}

	result, err := s.applyToggle(ctx, in, target, targetID)
	if err != nil {
		return nil, err
	}

	score, err := s.votes.Score(ctx, target, targetID)
	if err != nil {
		return nil, fmt.Errorf("cast vote: score: %w", err)
	}
	result.Score = score

	s.log.Info().
		Uint("user_id", in.UserID).
		Str("target", string(target)).
		Uint("target_id", targetID).
		Str("action", string(result.Action)).
		Msg("vote cast")

	return result, nil
}

func (s *VoteService) resolveTarget(ctx context.Context, in ports.CastVoteInput) (domain.VoteTarget, uint, uint, error) {
	if in.QuestionID != 0 {
		q, err := s.questions.FindSummary(ctx, in.QuestionID)
		if err != nil {
			return "", 0, 0, err
		}
		return domain.TargetQuestion, q.ID, q.AuthorID, nil
	}

	a, err := s.answers.FindByID(ctx, in.AnswerID)
	if err != nil {
		return "", 0, 0, err
	}
	return domain.TargetAnswer, a.ID, a.AuthorID, nil
}

func (s *VoteService) applyToggle(ctx context.Context, in ports.CastVoteInput, target domain.VoteTarget, targetID uint) (*ports.VoteResult, error) {
	existing, err := s.votes.Find(ctx, in.UserID, target, targetID)
	switch {
	case err == nil && existing.Type == in.Type:
		if err := s.votes.Delete(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("cast vote: remove: %w", err)
		}
		return &ports.VoteResult{Action: ports.VoteRemoved, Type: nil}, nil

	case err == nil:
		if err := s.votes.UpdateType(ctx, existing.ID, in.Type); err != nil {
			return nil, fmt.Errorf("cast vote: update: %w", err)
		}
		t := in.Type
		return &ports.VoteResult{Action: ports.VoteUpdated, Type: &t}, nil

	case !errors.Is(err, domain.ErrVoteNotFound):
		return nil, fmt.Errorf("cast vote: lookup: %w", err)
	}

	vote := &domain.Vote{UserID: in.UserID, Type: in.Type}
	if target == domain.TargetQuestion {
		vote.QuestionID = &targetID
	} else {
		vote.AnswerID = &targetID
	}
	if err := s.votes.Create(ctx, vote); err != nil {
		// Lost a race against a concurrent identical request; the constraint
		// kept the invariant, so report the conflict as-is.
		return nil, fmt.Errorf("cast vote: create: %w", err)
	}
	t := in.Type
	return &ports.VoteResult{Action: ports.VoteCreated, Type: &t}, nil
}
