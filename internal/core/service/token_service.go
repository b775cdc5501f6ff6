package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/focusboard/focusboard-api/internal/core/domain"
)

// DefaultTokenTTL is how long an identity token stays valid after issuance.
const DefaultTokenTTL = 7 * 24 * time.Hour

type tokenClaims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 identity tokens signed with a
// process-wide secret. Tokens are stateless; nothing is stored server side.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService fails when secret is empty: a missing signing secret is a
// startup misconfiguration, never a per-request condition.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service: signing secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue mints a token embedding userID and username.
func (s *TokenService) Issue(userID int64, username string) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded identity.
// The error is always one of domain.ErrTokenExpired, domain.ErrTokenMalformed
// or domain.ErrTokenUnexpected.
func (s *TokenService) Verify(raw string) (domain.Identity, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Identity{}, classifyTokenError(err)
	}

	if claims.UserID <= 0 || claims.Username == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing identity claims", domain.ErrTokenUnexpected)
	}
	return domain.Identity{ID: claims.UserID, Username: claims.Username}, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return domain.ErrTokenMalformed
	default:
		return fmt.Errorf("%w: %v", domain.ErrTokenUnexpected, err)
	}
}
