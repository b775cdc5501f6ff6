package ports

import (
	"context"

	"github.com/focusboard/focusboard-api/internal/core/domain"
)

// UserRepository defines the persistence of user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, patch domain.ProfilePatch) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
