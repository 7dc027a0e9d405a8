package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stackit/qna-api/internal/core/domain"
)

type AnswerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{db: db}
}

func (r *AnswerRepository) Create(ctx context.Context, a *domain.Answer) error {
	return r.db.WithContext(ctx).Omit("Author").Create(a).Error
}

func (r *AnswerRepository) FindByID(ctx context.Context, id uint) (*domain.Answer, error) {
	var a domain.Answer
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&a, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAnswerNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AnswerRepository) FindByQuestionAndAuthor(ctx context.Context, questionID, authorID uint) (*domain.Answer, error) {
	var a domain.Answer
	err := r.db.WithContext(ctx).
		Where("question_id = ? AND author_id = ?", questionID, authorID).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAnswerNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Accept flips the accepted marker to answerID in one transaction: the old
// flag is cleared, the new one set, and the question repointed. Either all
// three mutations land or none do.
func (r *AnswerRepository) Accept(ctx context.Context, questionID, answerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Answer{}).
			Where("question_id = ? AND is_accepted = ?", questionID, true).
			Update("is_accepted", false).Error; err != nil {
			return err
		}

		res := tx.Model(&domain.Answer{}).
			Where("id = ? AND question_id = ?", answerID, questionID).
			Update("is_accepted", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrAnswerNotFound
		}

		return tx.Model(&domain.Question{}).
			Where("id = ?", questionID).
			Update("accepted_answer_id", answerID).Error
	})
}
