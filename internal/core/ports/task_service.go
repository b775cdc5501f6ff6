package ports

import (
	"context"
	"time"

	"github.com/focusboard/focusboard-api/internal/core/domain"
)

// CreateTaskInput is the DTO passed from the transport layer to TaskService.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	Category    *string
	DueDate     *time.Time
}

type TaskService interface {
	List(ctx context.Context, userID int64, filter domain.TaskFilter) ([]domain.Task, error)
	Get(ctx context.Context, userID, id int64) (*domain.Task, error)
	Create(ctx context.Context, userID int64, in CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, userID, id int64, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, userID, id int64) error
}

// CreateNoteInput is the DTO passed from the transport layer to NoteService.
type CreateNoteInput struct {
	Title   string
	Content string
	Tags    []string
	Pinned  bool
}

type NoteService interface {
	List(ctx context.Context, userID int64, filter domain.NoteFilter) ([]domain.Note, error)
	Get(ctx context.Context, userID, id int64) (*domain.Note, error)
	Create(ctx context.Context, userID int64, in CreateNoteInput) (*domain.Note, error)
	Update(ctx context.Context, userID, id int64, patch domain.NotePatch) (*domain.Note, error)
	Delete(ctx context.Context, userID, id int64) error
}
