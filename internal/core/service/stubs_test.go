package service

import (
	"context"
	"sync"

	"github.com/focusboard/focusboard-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
		if user.Phone != nil && u.Phone != nil && *u.Phone == *user.Phone {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id int64, patch domain.ProfilePatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Email.Set {
		u.Email = patch.Email.Ptr()
	}
	if patch.Phone.Set {
		u.Phone = patch.Phone.Ptr()
	}
	if patch.FullName.Set {
		u.FullName = patch.FullName.Ptr()
	}
	if patch.ProfilePhoto.Set {
		u.ProfilePhoto = patch.ProfilePhoto.Ptr()
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

// ---------------------------------------------------------------------------
// Recording event publisher
// ---------------------------------------------------------------------------

type published struct {
	userID int64
	event  domain.Event
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(_ context.Context, userID int64, e domain.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{userID: userID, event: e})
}

// ---------------------------------------------------------------------------
// Login limiter
// ---------------------------------------------------------------------------

type stubLimiter struct {
	max      int
	failures map[string]int
	allowErr error
}

func newStubLimiter(max int) *stubLimiter {
	return &stubLimiter{max: max, failures: make(map[string]int)}
}

func (l *stubLimiter) Allow(_ context.Context, username string) (bool, error) {
	if l.allowErr != nil {
		return false, l.allowErr
	}
	return l.failures[username] < l.max, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, username string) error {
	l.failures[username]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, username string) error {
	delete(l.failures, username)
	return nil
}
