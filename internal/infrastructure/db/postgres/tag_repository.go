package postgres

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stackit/qna-api/internal/core/domain"
	"github.com/stackit/qna-api/internal/core/ports"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// UpsertByName finds or creates a tag under its normalized name. Concurrent
// upserts of the same name resolve via ON CONFLICT DO NOTHING plus re-read.
func (r *TagRepository) UpsertByName(ctx context.Context, name string) (*domain.Tag, error) {
	name = domain.NormalizeTagName(name)

	tag := domain.Tag{Name: name, Description: "Tag for " + name}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&tag).Error
	if err != nil {
		return nil, err
	}

	// DoNothing leaves ID zero when the row already existed.
	if tag.ID == 0 {
		if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
			return nil, err
		}
	}
	return &tag, nil
}

func (r *TagRepository) List(ctx context.Context, search string, limit int) ([]ports.TagWithCount, error) {
	q := r.db.WithContext(ctx).Model(&domain.Tag{})
	if search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var tags []domain.Tag
	if err := q.Order("name ASC").Limit(limit).Find(&tags).Error; err != nil {
		return nil, err
	}

	result := make([]ports.TagWithCount, 0, len(tags))
	for _, tag := range tags {
		var count int64
		err := r.db.WithContext(ctx).
			Table("question_tags").
			Where("tag_id = ?", tag.ID).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		result = append(result, ports.TagWithCount{Tag: tag, QuestionCount: count})
	}
	return result, nil
}
