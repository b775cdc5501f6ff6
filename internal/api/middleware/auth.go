package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/focusboard/focusboard-api/internal/api/metrics"
	"github.com/focusboard/focusboard-api/internal/core/domain"
	"github.com/focusboard/focusboard-api/internal/core/ports"
)

const identityKey = "identity"

// RequireAuth rejects the request unless it carries a valid bearer token.
// Errors are returned to the HTTP error handler:
//   - no token → domain.ErrUnauthorized
//   - expired → domain.ErrTokenExpired
//   - anything else → domain.ErrTokenInvalid
func RequireAuth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return domain.ErrUnauthorized
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.TokenRejectionsTotal.WithLabelValues("expired").Inc()
					return domain.ErrTokenExpired
				}
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return domain.ErrTokenInvalid
			}

			SetIdentity(c, identity)
			return next(c)
		}
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := bearerToken(c); token != "" {
				if identity, err := verifier.Verify(token); err == nil {
					SetIdentity(c, identity)
				}
			}
			return next(c)
		}
	}
}

// SetIdentity attaches the authenticated caller to the request context.
func SetIdentity(c echo.Context, identity domain.Identity) {
	c.Set(identityKey, identity)
}

// IdentityFrom returns the caller attached by RequireAuth or OptionalAuth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
