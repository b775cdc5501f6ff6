package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/focusboard/focusboard-api/internal/core/domain"
	"github.com/focusboard/focusboard-api/internal/core/ports"
)

var noteSortFields = []string{"created_at", "updated_at", "title"}

// NoteService implements note CRUD for the calling user.
type NoteService struct {
	repo   ports.NoteRepository
	events ports.EventPublisher
	log    zerolog.Logger
}

func NewNoteService(repo ports.NoteRepository, events ports.EventPublisher, log zerolog.Logger) *NoteService {
	if events == nil {
		events = noopPublisher{}
	}
	return &NoteService{repo: repo, events: events, log: log}
}

func (s *NoteService) List(ctx context.Context, userID int64, filter domain.NoteFilter) ([]domain.Note, error) {
	var err error
	if filter.SortBy, filter.Order, err = normalizeSort(filter.SortBy, filter.Order, noteSortFields, "updated_at"); err != nil {
		return nil, err
	}
	if filter.Limit, filter.Offset, err = clampPage(filter.Limit, filter.Offset); err != nil {
		return nil, err
	}
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Tag = strings.ToLower(strings.TrimSpace(filter.Tag))

	return s.repo.List(ctx, userID, filter)
}

func (s *NoteService) Get(ctx context.Context, userID, id int64) (*domain.Note, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *NoteService) Create(ctx context.Context, userID int64, in ports.CreateNoteInput) (*domain.Note, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Note{
		UserID:  userID,
		Title:   strings.TrimSpace(in.Title),
		Content: in.Content,
		Tags:    normalizeTags(in.Tags),
		Pinned:  in.Pinned,
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, userID, domain.Event{Type: domain.EventCreated, Entity: domain.EntityNote, Payload: created})
	s.log.Info().Int64("user_id", userID).Int64("note_id", created.ID).Msg("note created")
	return created, nil
}

func (s *NoteService) Update(ctx context.Context, userID, id int64, patch domain.NotePatch) (*domain.Note, error) {
	if patch.Empty() {
		return nil, invalid("no fields to update")
	}
	if patch.Title.Set {
		if patch.Title.Null {
			return nil, invalid("title cannot be null")
		}
		if err := validateTitle(patch.Title.Value); err != nil {
			return nil, err
		}
		patch.Title.Value = strings.TrimSpace(patch.Title.Value)
	}
	if patch.Pinned.Set && patch.Pinned.Null {
		return nil, invalid("pinned cannot be null")
	}
	// Notes store "" and an empty tag list rather than NULL.
	if patch.Content.Null {
		patch.Content = domain.Some("")
	}
	if patch.Tags.Set {
		patch.Tags = domain.Some(normalizeTags(patch.Tags.Value))
	}

	updated, err := s.repo.Update(ctx, userID, id, patch)
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, userID, domain.Event{Type: domain.EventUpdated, Entity: domain.EntityNote, Payload: updated})
	s.log.Info().Int64("user_id", userID).Int64("note_id", id).Msg("note updated")
	return updated, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.events.Publish(ctx, userID, domain.Event{Type: domain.EventDeleted, Entity: domain.EntityNote, Payload: domain.DeletedPayload{ID: id}})
	s.log.Info().Int64("user_id", userID).Int64("note_id", id).Msg("note deleted")
	return nil
}

// normalizeTags lower-cases, trims and de-duplicates tags, keeping order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
