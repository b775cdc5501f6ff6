package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/focusboard/focusboard-api/internal/core/domain"
	"github.com/focusboard/focusboard-api/internal/core/service"
)

// memUsers is an in-memory ports.UserRepository.
type memUsers struct {
	mu    sync.Mutex
	next  int64
	users map[int64]*domain.User
}

func newMemUsers() *memUsers { return &memUsers{users: map[int64]*domain.User{}} }

func (m *memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}
	m.next++
	cp := *u
	cp.ID = m.next
	m.users[cp.ID] = &cp
	return &cp, nil
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) UpdateProfile(ctx context.Context, id int64, _ domain.ProfilePatch) (*domain.User, error) {
	return m.FindByID(ctx, id)
}

func (m *memUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	tokens, err := service.NewTokenService("router-test-secret", 0)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	repo := newMemUsers()
	hasher := service.NewPasswordHasher(4)
	log := zerolog.Nop()

	return NewRouter(Deps{
		Auth:     service.NewAuthService(repo, hasher, tokens, nil, log),
		Users:    service.NewUserService(repo, hasher, log),
		Tasks:    service.NewTaskService(nil, nil, log),
		Notes:    service.NewNoteService(nil, nil, log),
		Verifier: tokens,
		Log:      log,
	})
}

func do(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_RegisterLoginMe(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/auth/register", `{"username":"alice","password":"secret1"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodPost, "/api/auth/register", `{"username":"alice","password":"secret1"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"secret1"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil || login.Token == "" {
		t.Fatalf("login: no token in %s", rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/auth/me", "", login.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", rec.Code)
	}
	var me struct {
		User domain.Identity `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("me: invalid json: %v", err)
	}
	if me.User.Username != "alice" || me.User.ID == 0 {
		t.Fatalf("me: unexpected identity %+v", me.User)
	}

	rec = do(t, h, http.MethodGet, "/api/auth/session", "", login.Token)
	if !strings.Contains(rec.Body.String(), `"authenticated":true`) {
		t.Fatalf("session: unexpected body %s", rec.Body.String())
	}
}

func TestRouter_LoginWrongPassword(t *testing.T) {
	h := newTestRouter(t)
	do(t, h, http.MethodPost, "/api/auth/register", `{"username":"alice","password":"secret1"}`, "")

	rec := do(t, h, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"nope"}`, "")
	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "INVALID_CREDENTIALS") {
		t.Fatalf("expected 401 INVALID_CREDENTIALS, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ProtectedRouteErrors(t *testing.T) {
	h := newTestRouter(t)

	cases := []struct {
		name  string
		token string
		code  string
	}{
		{"no token", "", "UNAUTHORIZED"},
		{"garbage token", "garbage", "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/api/auth/me", "", tc.token)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Code != tc.code {
				t.Fatalf("expected code %s, got %+v", tc.code, resp)
			}
		})
	}

	rec := do(t, h, http.MethodGet, "/api/tasks", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("tasks without token: expected 401, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/api/auth/session", "", "garbage")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"authenticated":false`) {
		t.Fatalf("session with bad token should be anonymous, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_Health(t *testing.T) {
	h := newTestRouter(t)

	if rec := do(t, h, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/no-such-route", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
