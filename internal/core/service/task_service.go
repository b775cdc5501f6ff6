package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/focusboard/focusboard-api/internal/core/domain"
	"github.com/focusboard/focusboard-api/internal/core/ports"
)

var taskSortFields = []string{"created_at", "updated_at", "due_date", "priority", "title"}

// TaskService implements task CRUD for the calling user and announces every
// committed mutation on the user's realtime channel.
type TaskService struct {
	repo   ports.TaskRepository
	events ports.EventPublisher
	log    zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, events ports.EventPublisher, log zerolog.Logger) *TaskService {
	if events == nil {
		events = noopPublisher{}
	}
	return &TaskService{repo: repo, events: events, log: log}
}

func (s *TaskService) List(ctx context.Context, userID int64, filter domain.TaskFilter) ([]domain.Task, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, invalid("status must be one of: pending, in_progress, completed")
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return nil, invalid("priority must be one of: low, medium, high")
	}

	var err error
	if filter.SortBy, filter.Order, err = normalizeSort(filter.SortBy, filter.Order, taskSortFields, "created_at"); err != nil {
		return nil, err
	}
	if filter.Limit, filter.Offset, err = clampPage(filter.Limit, filter.Offset); err != nil {
		return nil, err
	}
	filter.Search = strings.TrimSpace(filter.Search)

	return s.repo.List(ctx, userID, filter)
}

func (s *TaskService) Get(ctx context.Context, userID, id int64) (*domain.Task, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *TaskService) Create(ctx context.Context, userID int64, in ports.CreateTaskInput) (*domain.Task, error) {
	if err := validateTitle(in.Title); err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = domain.TaskPending
	}
	if !in.Status.Valid() {
		return nil, invalid("status must be one of: pending, in_progress, completed")
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	if !in.Priority.Valid() {
		return nil, invalid("priority must be one of: low, medium, high")
	}

	category := blankToNil(in.Category)
	if err := validateMaxLen("category", category, maxCategoryLen); err != nil {
		return nil, err
	}

	task := &domain.Task{
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		Category:    category,
		DueDate:     in.DueDate,
	}
	if task.Status == domain.TaskCompleted {
		now := time.Now().UTC()
		task.CompletedAt = &now
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, userID, domain.Event{Type: domain.EventCreated, Entity: domain.EntityTask, Payload: created})
	s.log.Info().Int64("user_id", userID).Int64("task_id", created.ID).Msg("task created")
	return created, nil
}

func (s *TaskService) Update(ctx context.Context, userID, id int64, patch domain.TaskPatch) (*domain.Task, error) {
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
	if patch.Status.Set && (patch.Status.Null || !patch.Status.Value.Valid()) {
		return nil, invalid("status must be one of: pending, in_progress, completed")
	}
	if patch.Priority.Set && (patch.Priority.Null || !patch.Priority.Value.Valid()) {
		return nil, invalid("priority must be one of: low, medium, high")
	}
	patch.Category = blankToNull(patch.Category)
	if err := validateMaxLen("category", patch.Category.Ptr(), maxCategoryLen); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, userID, id, patch)
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, userID, domain.Event{Type: domain.EventUpdated, Entity: domain.EntityTask, Payload: updated})
	s.log.Info().Int64("user_id", userID).Int64("task_id", id).Msg("task updated")
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.events.Publish(ctx, userID, domain.Event{Type: domain.EventDeleted, Entity: domain.EntityTask, Payload: domain.DeletedPayload{ID: id}})
	s.log.Info().Int64("user_id", userID).Int64("task_id", id).Msg("task deleted")
	return nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, int64, domain.Event) {}
