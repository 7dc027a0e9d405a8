package domain

import (
	"strings"
	"time"
)

// Tag has a unique normalized name and a many-to-many relation with questions.
type Tag struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:50;not null"`
	Description string    `json:"description" gorm:"size:255"`
	Color       string    `json:"color" gorm:"size:16"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NormalizeTagName lowercases and trims a raw tag name. All tag lookups and
// upserts go through this so "Go " and "go" resolve to the same row.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
