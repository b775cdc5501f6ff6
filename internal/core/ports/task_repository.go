package ports

import (
	"context"

	"github.com/focusboard/focusboard-api/internal/core/domain"
)

// TaskRepository persists tasks. Every method is scoped to userID; a row
// owned by another user behaves exactly like a missing one.
type TaskRepository interface {
	List(ctx context.Context, userID int64, filter domain.TaskFilter) ([]domain.Task, error)
	Get(ctx context.Context, userID, id int64) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, userID, id int64, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, userID, id int64) error
}

// NoteRepository persists notes, scoped to userID like TaskRepository.
type NoteRepository interface {
	List(ctx context.Context, userID int64, filter domain.NoteFilter) ([]domain.Note, error)
	Get(ctx context.Context, userID, id int64) (*domain.Note, error)
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Update(ctx context.Context, userID, id int64, patch domain.NotePatch) (*domain.Note, error)
	Delete(ctx context.Context, userID, id int64) error
}
