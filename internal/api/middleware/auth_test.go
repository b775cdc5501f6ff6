package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/focusboard/focusboard-api/internal/core/domain"
)

type stubVerifier struct {
	identity domain.Identity
	err      error
}

func (s stubVerifier) Verify(token string) (domain.Identity, error) {
	if s.err != nil {
		return domain.Identity{}, s.err
	}
	return s.identity, nil
}

func newContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireAuth_ValidToken(t *testing.T) {
	c, rec := newContext("Bearer good")
	mw := RequireAuth(stubVerifier{identity: domain.Identity{ID: 7, Username: "alice"}})

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		id, ok := IdentityFrom(c)
		if !ok || id.ID != 7 || id.Username != "alice" {
			t.Fatalf("identity not attached: %+v", id)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAuth_SchemeIsCaseInsensitive(t *testing.T) {
	c, _ := newContext("bearer good")
	mw := RequireAuth(stubVerifier{identity: domain.Identity{ID: 1, Username: "a"}})

	if err := mw(func(c echo.Context) error { return nil })(c); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		header string
		verify error
		want   error
	}{
		{"missing header", "", nil, domain.ErrUnauthorized},
		{"wrong scheme", "Basic abc", nil, domain.ErrUnauthorized},
		{"empty token", "Bearer ", nil, domain.ErrUnauthorized},
		{"expired", "Bearer old", domain.ErrTokenExpired, domain.ErrTokenExpired},
		{"malformed", "Bearer junk", domain.ErrTokenMalformed, domain.ErrTokenInvalid},
		{"unexpected", "Bearer odd", domain.ErrTokenUnexpected, domain.ErrTokenInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newContext(tc.header)
			mw := RequireAuth(stubVerifier{err: tc.verify})
			err := mw(func(c echo.Context) error {
				t.Fatalf("next should not be called")
				return nil
			})(c)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestOptionalAuth_AttachesValidIdentity(t *testing.T) {
	c, _ := newContext("Bearer good")
	mw := OptionalAuth(stubVerifier{identity: domain.Identity{ID: 3, Username: "bob"}})

	err := mw(func(c echo.Context) error {
		if id, ok := IdentityFrom(c); !ok || id.ID != 3 {
			t.Fatalf("identity not attached")
		}
		return nil
	})(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOptionalAuth_ProceedsAnonymously(t *testing.T) {
	for _, header := range []string{"", "Bearer expired"} {
		c, _ := newContext(header)
		mw := OptionalAuth(stubVerifier{err: domain.ErrTokenExpired})

		called := false
		err := mw(func(c echo.Context) error {
			called = true
			if _, ok := IdentityFrom(c); ok {
				t.Fatalf("identity should not be attached for %q", header)
			}
			return nil
		})(c)
		if err != nil || !called {
			t.Fatalf("expected anonymous pass-through for %q, err=%v", header, err)
		}
	}
}
