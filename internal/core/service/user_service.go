package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/focusboard/focusboard-api/internal/core/domain"
	"github.com/focusboard/focusboard-api/internal/core/ports"
)

// UserService manages the authenticated caller's own account.
type UserService struct {
	repo   ports.UserRepository
	hasher *PasswordHasher
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher *PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, log: log}
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile applies only the attributes present in patch. Blank strings
// clear the attribute, so a phone can be released for another account.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, patch domain.ProfilePatch) (*domain.User, error) {
	if patch.Empty() {
		return s.repo.FindByID(ctx, userID)
	}

	patch.Email = blankToNull(patch.Email)
	patch.Phone = blankToNull(patch.Phone)
	patch.FullName = blankToNull(patch.FullName)
	patch.ProfilePhoto = blankToNull(patch.ProfilePhoto)

	if patch.Email.Set && !patch.Email.Null {
		if err := validateEmail(&patch.Email.Value); err != nil {
			return nil, err
		}
	}
	if err := validateMaxLen("phone", patch.Phone.Ptr(), maxPhoneLen); err != nil {
		return nil, err
	}
	if err := validateMaxLen("full name", patch.FullName.Ptr(), maxFullNameLen); err != nil {
		return nil, err
	}

	user, err := s.repo.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", userID).Msg("profile updated")
	return user, nil
}

// ChangePassword replaces the password hash after checking the current one.
// Tokens issued before the change stay valid until they expire.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if current == "" {
		return invalid("current password is required")
	}
	if err := validatePassword(next); err != nil {
		return err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(current, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.log.Info().Int64("user_id", userID).Msg("password changed")
	return nil
}

func blankToNull(o domain.Optional[string]) domain.Optional[string] {
	if !o.Set || o.Null {
		return o
	}
	v := blankToNil(&o.Value)
	if v == nil {
		return domain.Null[string]()
	}
	o.Value = *v
	return o
}
