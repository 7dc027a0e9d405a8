package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/stackit/qna-api/internal/core/domain"
	"github.com/stackit/qna-api/internal/core/ports"
)

const testSecret = "test-secret"

func registerInput(email string) ports.RegisterInput {
	return ports.RegisterInput{
		Email:     email,
		Password:  "hunter22",
		FirstName: "Ana",
		LastName:  "Asker",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	user, err := svc.Register(context.Background(), registerInput("Ana@Example.COM "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Email != "ana@example.com" {
		t.Errorf("email must be normalized, got %q", user.Email)
	}
	if user.Role != domain.RoleUser {
		t.Errorf("role: want %q, got %q", domain.RoleUser, user.Role)
	}
	if !user.IsActive {
		t.Error("new accounts must be active")
	}
	if user.PasswordHash == "hunter22" {
		t.Error("password must be hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")) != nil {
		t.Error("stored hash must verify against the original password")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), registerInput("ana@example.com")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), registerInput("ANA@example.com"))
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_EmptyCredentials(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	for _, in := range []ports.RegisterInput{
		{Email: "", Password: "x"},
		{Email: "a@b.c", Password: ""},
	} {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("input %+v: expected ErrInvalidCredentials, got %v", in, err)
		}
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)
	if _, err := svc.Register(context.Background(), registerInput("ana@example.com")); err != nil {
		t.Fatal(err)
	}

	token, user, err := svc.Login(context.Background(), "ana@example.com", "hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Error("expected a signed token")
	}
	if user.Email != "ana@example.com" {
		t.Errorf("unexpected user: %q", user.Email)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)
	if _, err := svc.Register(context.Background(), registerInput("ana@example.com")); err != nil {
		t.Fatal(err)
	}

	_, _, err := svc.Login(context.Background(), "ana@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailIndistinguishable(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email must look like bad credentials, got %v", err)
	}
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)
	user, err := svc.Register(context.Background(), registerInput("ana@example.com"))
	if err != nil {
		t.Fatal(err)
	}
	users.byID[user.ID].IsActive = false

	_, _, err = svc.Login(context.Background(), "ana@example.com", "hunter22")
	if !errors.Is(err, domain.ErrInactiveAccount) {
		t.Errorf("expected ErrInactiveAccount, got %v", err)
	}
}

func TestAuthService_Authenticate_RoundTrip(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)
	if _, err := svc.Register(context.Background(), registerInput("ana@example.com")); err != nil {
		t.Fatal(err)
	}
	token, _, err := svc.Login(context.Background(), "ana@example.com", "hunter22")
	if err != nil {
		t.Fatal(err)
	}

	user, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("unexpected user: %q", user.Email)
	}
}

func TestAuthService_Authenticate_GarbageToken(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)

	for _, token := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Errorf("token %q: expected ErrUnauthenticated, got %v", token, err)
		}
	}
}

func TestAuthService_Authenticate_WrongSecret(t *testing.T) {
	users := newStubUserRepo()
	issuer := NewAuthService(users, "other-secret", time.Hour)
	if _, err := issuer.Register(context.Background(), registerInput("ana@example.com")); err != nil {
		t.Fatal(err)
	}
	token, _, err := issuer.Login(context.Background(), "ana@example.com", "hunter22")
	if err != nil {
		t.Fatal(err)
	}

	verifier := NewAuthService(users, testSecret, time.Hour)
	if _, err := verifier.Authenticate(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("foreign signature must be rejected, got %v", err)
	}
}

func TestAuthService_Authenticate_DeactivationTakesEffectImmediately(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)
	user, err := svc.Register(context.Background(), registerInput("ana@example.com"))
	if err != nil {
		t.Fatal(err)
	}
	token, _, err := svc.Login(context.Background(), "ana@example.com", "hunter22")
	if err != nil {
		t.Fatal(err)
	}

	// The token is still within its TTL, but the fresh lookup sees the flag.
	users.byID[user.ID].IsActive = false

	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, domain.ErrInactiveAccount) {
		t.Errorf("expected ErrInactiveAccount, got %v", err)
	}
}

func TestAuthService_Authenticate_DeletedUser(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)
	user, err := svc.Register(context.Background(), registerInput("ana@example.com"))
	if err != nil {
		t.Fatal(err)
	}
	token, _, err := svc.Login(context.Background(), "ana@example.com", "hunter22")
	if err != nil {
		t.Fatal(err)
	}

	delete(users.byID, user.ID)

	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated for deleted user, got %v", err)
	}
}

func TestAuthService_Authenticate_ExpiredToken(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)
	user, err := svc.Register(context.Background(), registerInput("ana@example.com"))
	if err != nil {
		t.Fatal(err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"role":   user.Role,
		"exp":    time.Now().Add(-time.Minute).Unix(),
	})
	token, err := expired.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated for expired token, got %v", err)
	}
}
