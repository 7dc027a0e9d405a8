package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stackit/qna-api/internal/core/domain"
	"github.com/stackit/qna-api/internal/core/ports"
)

const (
	defaultUserLimit = 10
	maxUserLimit     = 100
)

// UserService implements the public user directory and admin user management.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

// List is the public directory: limit/offset paging over all accounts.
func (s *UserService) List(ctx context.Context, search string, limit, offset int) ([]*domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > maxUserLimit {
		limit = maxUserLimit
	}
	page := offset/limit + 1

	users, _, err := s.users.List(ctx, ports.ListUsersFilter{Search: search, Page: page, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) AdminList(ctx context.Context, filter ports.ListUsersFilter) (*ports.UserPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultUserLimit
	}
	if filter.Limit > maxUserLimit {
		filter.Limit = maxUserLimit
	}

	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("admin list users: %w", err)
	}
	return &ports.UserPage{
		Users:      users,
		Pagination: paginate(filter.Page, filter.Limit, total),
	}, nil
}

// AdminUpdate mutates an account. Admins cannot deactivate themselves; every
// other combination of fields is applied as given.
func (s *UserService) AdminUpdate(ctx context.Context, in ports.AdminUpdateUserInput) (*domain.User, error) {
	if in.UserID == in.ActorID && in.IsActive != nil && !*in.IsActive {
		return nil, domain.ErrSelfDeactivation
	}

	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("admin update user: %w", err)
	}

	s.log.Info().
		Uint("actor_id", in.ActorID).
		Uint("user_id", user.ID).
		Str("role", user.Role).
		Bool("is_active", user.IsActive).
		Msg("user updated by admin")

	return user, nil
}

// AdminDelete removes an account for good. Deactivation is the soft path;
// deletion exists only as an explicit admin action and never for oneself.
func (s *UserService) AdminDelete(ctx context.Context, actorID, userID uint) error {
	if actorID == userID {
		return domain.ErrSelfDeletion
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("admin delete user: %w", err)
	}

	s.log.Info().Uint("actor_id", actorID).Uint("user_id", userID).Msg("user deleted by admin")
	return nil
}
