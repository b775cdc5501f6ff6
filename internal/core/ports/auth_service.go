package ports

import (
	"context"

	"github.com/focusboard/focusboard-api/internal/core/domain"
)

// RegisterInput is the DTO passed from the transport layer to AuthService.
type RegisterInput struct {
	Username string
	Password string
	Email    *string
	Phone    *string
	FullName *string
}

// AuthResult is returned by successful registrations and logins.
type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
}

// TokenIssuer mints identity tokens.
type TokenIssuer interface {
	Issue(userID int64, username string) (string, error)
}

// TokenVerifier resolves a token into the identity it carries.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// LoginLimiter throttles repeated failed logins per username.
type LoginLimiter interface {
	Allow(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
