package ports

import (
	"context"

	"github.com/stackit/qna-api/internal/core/domain"
)

// UserPage is one page of accounts with its pagination envelope.
type UserPage struct {
	Users      []*domain.User `json:"users"`
	Pagination Pagination     `json:"pagination"`
}

// AdminUpdateUserInput carries the mutable account fields; nil means unchanged.
type AdminUpdateUserInput struct {
	ActorID   uint
	UserID    uint
	FirstName *string
	LastName  *string
	Role      *string
	IsActive  *bool
}

// UserService implements the public user directory and admin user management.
type UserService interface {
	// List is the public directory: search plus limit/offset paging.
	List(ctx context.Context, search string, limit, offset int) ([]*domain.User, error)
	// AdminList returns a page of all accounts for the admin console.
	AdminList(ctx context.Context, filter ListUsersFilter) (*UserPage, error)
	// AdminUpdate mutates an account. An admin deactivating their own account
	// fails with domain.ErrSelfDeactivation.
	AdminUpdate(ctx context.Context, in AdminUpdateUserInput) (*domain.User, error)
	// AdminDelete removes an account. Self-deletion fails with
	// domain.ErrSelfDeletion.
	AdminDelete(ctx context.Context, actorID, userID uint) error
}
