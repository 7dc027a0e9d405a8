package ports

import (
	"context"

	"github.com/stackit/qna-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService implements registration, login and token resolution.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies credentials and returns a signed token plus the user.
	// Inactive accounts fail with domain.ErrInactiveAccount.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Authenticate resolves a token to a fresh user record. It fails with
	// domain.ErrUnauthenticated for missing/expired/invalid tokens and with
	// domain.ErrInactiveAccount for deactivated accounts.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}
