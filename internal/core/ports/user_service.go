package ports

import (
	"context"

	"github.com/focusboard/focusboard-api/internal/core/domain"
)

// UserService manages the caller's own profile.
type UserService interface {
	Profile(ctx context.Context, userID int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int64, patch domain.ProfilePatch) (*domain.User, error)
	ChangePassword(ctx context.Context, userID int64, current, next string) error
}
