package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/focusboard/focusboard-api/internal/core/domain"
	"github.com/focusboard/focusboard-api/internal/core/ports"
)

type stubNoteRepo struct {
	nextID int64
	notes  map[int64]*domain.Note
}

func newStubNoteRepo() *stubNoteRepo {
	return &stubNoteRepo{notes: make(map[int64]*domain.Note)}
}

func (r *stubNoteRepo) List(_ context.Context, userID int64, _ domain.NoteFilter) ([]domain.Note, error) {
	var out []domain.Note
	for _, n := range r.notes {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *stubNoteRepo) Get(_ context.Context, userID, id int64) (*domain.Note, error) {
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return nil, domain.ErrNoteNotFound
	}
	clone := *n
	return &clone, nil
}

func (r *stubNoteRepo) Create(_ context.Context, n *domain.Note) (*domain.Note, error) {
	r.nextID++
	stored := *n
	stored.ID = r.nextID
	r.notes[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *stubNoteRepo) Update(_ context.Context, userID, id int64, p domain.NotePatch) (*domain.Note, error) {
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return nil, domain.ErrNoteNotFound
	}
	if p.Content.Set {
		n.Content = p.Content.Value
	}
	if p.Tags.Set {
		n.Tags = p.Tags.Value
	}
	if p.Pinned.Set {
		n.Pinned = p.Pinned.Value
	}
	clone := *n
	return &clone, nil
}

func (r *stubNoteRepo) Delete(_ context.Context, userID, id int64) error {
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return domain.ErrNoteNotFound
	}
	delete(r.notes, id)
	return nil
}

func TestNoteService_CreateNormalizesTags(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewNoteService(newStubNoteRepo(), pub, zerolog.Nop())

	note, err := svc.Create(context.Background(), 3, ports.CreateNoteInput{
		Title: "Go notes",
		Tags:  []string{" Go ", "go", "", "Concurrency"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if want := []string{"go", "concurrency"}; !reflect.DeepEqual(note.Tags, want) {
		t.Fatalf("tags = %v, want %v", note.Tags, want)
	}
	if len(pub.events) != 1 || pub.events[0].event.Name() != "note_created" || pub.events[0].userID != 3 {
		t.Fatalf("unexpected events: %+v", pub.events)
	}
}

func TestNoteService_UpdateNullContentBecomesEmpty(t *testing.T) {
	svc := NewNoteService(newStubNoteRepo(), &recordingPublisher{}, zerolog.Nop())
	note, _ := svc.Create(context.Background(), 3, ports.CreateNoteInput{Title: "t", Content: "body"})

	updated, err := svc.Update(context.Background(), 3, note.ID, domain.NotePatch{Content: domain.Null[string]()})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Content != "" {
		t.Fatalf("expected empty content, got %q", updated.Content)
	}

	if _, err := svc.Update(context.Background(), 3, note.ID, domain.NotePatch{Pinned: domain.Null[bool]()}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for null pinned, got %v", err)
	}
}

func TestNoteService_DeleteForeignNote(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewNoteService(newStubNoteRepo(), pub, zerolog.Nop())
	note, _ := svc.Create(context.Background(), 3, ports.CreateNoteInput{Title: "t"})

	if err := svc.Delete(context.Background(), 4, note.ID); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
	if len(pub.events) != 1 {
		t.Fatalf("failed delete must not publish, got %d events", len(pub.events))
	}
}
