package ports

import (
	"context"

	"github.com/stackit/qna-api/internal/core/domain"
)

// ListUsersFilter carries the query parameters for listing accounts.
type ListUsersFilter struct {
	Search string // optional: partial match on email, first or last name
	Page   int    // 1-based
	Limit  int    // max rows per page
}

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns a page of users matching filter and the total count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id uint) error
}
