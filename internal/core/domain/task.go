package domain

import "time"

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// TaskPriority ranks tasks for sorting.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"user_id"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Category    *string      `json:"category,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TaskPatch lists the task attributes a caller asked to change.
type TaskPatch struct {
	Title       Optional[string]       `json:"title"`
	Description Optional[string]       `json:"description"`
	Status      Optional[TaskStatus]   `json:"status"`
	Priority    Optional[TaskPriority] `json:"priority"`
	Category    Optional[string]       `json:"category"`
	DueDate     Optional[time.Time]    `json:"due_date"`
}

// Empty reports whether the patch touches no attribute.
func (p TaskPatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Status.Set &&
		!p.Priority.Set && !p.Category.Set && !p.DueDate.Set
}

// TaskFilter narrows and orders a task listing. Zero values mean "any".
type TaskFilter struct {
	Status   TaskStatus
	Priority TaskPriority
	Category string
	Search   string
	SortBy   string
	Order    string
	Limit    int
	Offset   int
}
