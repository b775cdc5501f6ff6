package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/focusboard/focusboard-api/internal/core/domain"
	"github.com/focusboard/focusboard-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo    ports.UserRepository
	hasher  *PasswordHasher
	tokens  ports.TokenIssuer
	limiter ports.LoginLimiter
	log     zerolog.Logger
}

// NewAuthService wires the credential store, token issuer and login limiter.
// A nil limiter disables throttling.
func NewAuthService(
	repo ports.UserRepository,
	hasher *PasswordHasher,
	tokens ports.TokenIssuer,
	limiter ports.LoginLimiter,
	log zerolog.Logger,
) *AuthService {
	if limiter == nil {
		limiter = noopLimiter{}
	}
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, limiter: limiter, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	email := blankToNil(in.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	phone := blankToNil(in.Phone)
	if err := validateMaxLen("phone", phone, maxPhoneLen); err != nil {
		return nil, err
	}
	fullName := blankToNil(in.FullName)
	if err := validateMaxLen("full name", fullName, maxFullNameLen); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		Phone:        phone,
		FullName:     fullName,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created.ID, created.Username)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login checks credentials and returns a fresh token. Unknown usernames and
// wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, invalid("username and password are required")
	}

	allowed, err := s.limiter.Allow(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login limiter unavailable, allowing attempt")
	} else if !allowed {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.recordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login attempts")
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user logged in")
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if err := s.limiter.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
	}
}

type noopLimiter struct{}

func (noopLimiter) Allow(context.Context, string) (bool, error)  { return true, nil }
func (noopLimiter) RecordFailure(context.Context, string) error { return nil }
func (noopLimiter) Reset(context.Context, string) error         { return nil }
