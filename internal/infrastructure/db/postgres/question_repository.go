package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/stackit/qna-api/internal/core/domain"
	"github.com/stackit/qna-api/internal/core/ports"
)

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Create inserts the question; GORM persists the question_tags associations
// alongside the row.
func (r *QuestionRepository) Create(ctx context.Context, q *domain.Question) error {
	return r.db.WithContext(ctx).Create(q).Error
}

// FindByID loads the full detail view: author, tags, answers (accepted first,
// then oldest) with their authors and votes, and the question's own votes.
func (r *QuestionRepository) FindByID(ctx context.Context, id uint) (*domain.Question, error) {
	var q domain.Question
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_accepted DESC, created_at ASC")
		}).
		Preload("Answers.Author").
		Preload("Answers.Votes").
		Preload("Votes").
		First(&q, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}
	return &q, nil
}

// FindSummary loads only the question row itself.
func (r *QuestionRepository) FindSummary(ctx context.Context, id uint) (*domain.Question, error) {
	var q domain.Question
	err := r.db.WithContext(ctx).First(&q, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) List(ctx context.Context, filter ports.ListQuestionsFilter) ([]*domain.Question, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Question{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filter.Tag != "" {
		q = q.Where(
			"id IN (SELECT question_id FROM question_tags qt JOIN tags t ON t.id = qt.tag_id WHERE t.name = ?)",
			filter.Tag,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case ports.SortOldest:
		q = q.Order("created_at ASC")
	case ports.SortMostVoted:
		q = q.Order("(SELECT COUNT(*) FROM votes v WHERE v.question_id = questions.id) DESC, created_at DESC")
	case ports.SortMostAnswers:
		q = q.Order("(SELECT COUNT(*) FROM answers a WHERE a.question_id = questions.id) DESC, created_at DESC")
	default: // newest
		q = q.Order("created_at DESC")
	}

	var questions []*domain.Question
	err := q.
		Preload("Author").
		Preload("Tags").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "question_id", "is_accepted")
		}).
		Preload("Votes", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "question_id", "user_id", "type")
		}).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}
