package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/focusboard/focusboard-api/internal/core/domain"
)

const taskColumns = `id, user_id, title, description, status, priority, category, due_date, completed_at, created_at, updated_at`

// taskOrderColumns whitelists the ORDER BY expressions a listing may use.
var taskOrderColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"due_date":   "due_date",
	"priority":   "CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END",
	"title":      "lower(title)",
}

// TaskRepository implements ports.TaskRepository on PostgreSQL.
type TaskRepository struct {
	db DB
}

func NewTaskRepository(db DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		t        domain.Task
		status   string
		priority string
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &status, &priority,
		&t.Category, &t.DueDate, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Status = domain.TaskStatus(status)
	t.Priority = domain.TaskPriority(priority)
	return &t, nil
}

func (r *TaskRepository) List(ctx context.Context, userID int64, f domain.TaskFilter) ([]domain.Task, error) {
	var w setClause
	conds := []string{fmt.Sprintf("user_id = $%d", w.arg(userID))}
	if f.Status != "" {
		conds = append(conds, fmt.Sprintf("status = $%d", w.arg(string(f.Status))))
	}
	if f.Priority != "" {
		conds = append(conds, fmt.Sprintf("priority = $%d", w.arg(string(f.Priority))))
	}
	if f.Category != "" {
		conds = append(conds, fmt.Sprintf("category = $%d", w.arg(f.Category)))
	}
	if f.Search != "" {
		i := w.arg("%" + escapeLike(f.Search) + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", i, i))
	}

	orderBy, ok := taskOrderColumns[f.SortBy]
	if !ok {
		orderBy = taskOrderColumns["created_at"]
	}
	dir := "DESC"
	if strings.EqualFold(f.Order, "asc") {
		dir = "ASC"
	}
	limit := w.arg(f.Limit)
	offset := w.arg(f.Offset)

	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE %s ORDER BY %s %s NULLS LAST, id %s LIMIT $%d OFFSET $%d`,
		taskColumns, strings.Join(conds, " AND "), orderBy, dir, dir, limit, offset)

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Get(ctx context.Context, userID, id int64) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`

	t, err := scanTask(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	query := `INSERT INTO tasks (user_id, title, description, status, priority, category, due_date, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + taskColumns

	created, err := scanTask(r.db.QueryRow(ctx, query,
		t.UserID, t.Title, t.Description, string(t.Status), string(t.Priority),
		t.Category, t.DueDate, t.CompletedAt))
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return created, nil
}

// Update writes only the attributes present in patch. Moving a task into
// "completed" stamps completed_at once; moving it out clears it.
func (r *TaskRepository) Update(ctx context.Context, userID, id int64, p domain.TaskPatch) (*domain.Task, error) {
	var set setClause
	if p.Title.Set {
		set.add("title", p.Title.Value)
	}
	if p.Description.Set {
		set.add("description", p.Description.Ptr())
	}
	if p.Status.Set {
		i := set.add("status", string(p.Status.Value))
		set.raw(fmt.Sprintf("completed_at = CASE WHEN $%d = 'completed' THEN COALESCE(completed_at, now()) ELSE NULL END", i))
	}
	if p.Priority.Set {
		set.add("priority", string(p.Priority.Value))
	}
	if p.Category.Set {
		set.add("category", p.Category.Ptr())
	}
	if p.DueDate.Set {
		set.add("due_date", p.DueDate.Ptr())
	}
	set.raw("updated_at = now()")
	idIdx := set.arg(id)
	userIdx := set.arg(userID)

	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`,
		set.String(), idIdx, userIdx, taskColumns)

	t, err := scanTask(r.db.QueryRow(ctx, query, set.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return t, nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
