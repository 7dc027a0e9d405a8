package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stackit/qna-api/internal/core/domain"
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) Find(ctx context.Context, userID uint, target domain.VoteTarget, targetID uint) (*domain.Vote, error) {
	var v domain.Vote
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if target == domain.TargetQuestion {
		q = q.Where("question_id = ?", targetID)
	} else {
		q = q.Where("answer_id = ?", targetID)
	}
	if err := q.First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVoteNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Create inserts a vote row. The (user, target) unique indexes are the real
// race arbiter: a concurrent duplicate insert fails here instead of creating
// a second row.
func (r *VoteRepository) Create(ctx context.Context, v *domain.Vote) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return domain.ErrDuplicateVote
		}
		return err
	}
	return nil
}

func (r *VoteRepository) UpdateType(ctx context.Context, voteID uint, t domain.VoteType) error {
	return r.db.WithContext(ctx).
		Model(&domain.Vote{}).
		Where("id = ?", voteID).
		Update("type", t).Error
}

func (r *VoteRepository) Delete(ctx context.Context, voteID uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Vote{}, voteID).Error
}

// Score computes count(UPVOTE) - count(DOWNVOTE) on demand; the score is
// never stored.
func (r *VoteRepository) Score(ctx context.Context, target domain.VoteTarget, targetID uint) (int, error) {
	column := "answer_id"
	if target == domain.TargetQuestion {
		column = "question_id"
	}

	var result struct {
		Up   int64
		Down int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Vote{}).
		Select(
			"COUNT(*) FILTER (WHERE type = ?) AS up, COUNT(*) FILTER (WHERE type = ?) AS down",
			domain.VoteUp, domain.VoteDown,
		).
		Where(column+" = ?", targetID).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}
	return int(result.Up - result.Down), nil
}
