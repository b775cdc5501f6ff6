package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/focusboard/focusboard-api/internal/core/domain"
)

const noteColumns = `id, user_id, title, content, tags, pinned, created_at, updated_at`

var noteOrderColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "lower(title)",
}

// NoteRepository implements ports.NoteRepository on PostgreSQL.
type NoteRepository struct {
	db DB
}

func NewNoteRepository(db DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func scanNote(row pgx.Row) (*domain.Note, error) {
	var n domain.Note
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.Tags, &n.Pinned, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return &n, nil
}

// List returns pinned notes first, then orders by the requested column.
func (r *NoteRepository) List(ctx context.Context, userID int64, f domain.NoteFilter) ([]domain.Note, error) {
	var w setClause
	conds := []string{fmt.Sprintf("user_id = $%d", w.arg(userID))}
	if f.Search != "" {
		i := w.arg("%" + escapeLike(f.Search) + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", i, i))
	}
	if f.Tag != "" {
		conds = append(conds, fmt.Sprintf("$%d = ANY(tags)", w.arg(f.Tag)))
	}
	if f.Pinned != nil {
		conds = append(conds, fmt.Sprintf("pinned = $%d", w.arg(*f.Pinned)))
	}

	orderBy, ok := noteOrderColumns[f.SortBy]
	if !ok {
		orderBy = noteOrderColumns["updated_at"]
	}
	dir := "DESC"
	if strings.EqualFold(f.Order, "asc") {
		dir = "ASC"
	}
	limit := w.arg(f.Limit)
	offset := w.arg(f.Offset)

	query := fmt.Sprintf(`SELECT %s FROM notes WHERE %s ORDER BY pinned DESC, %s %s, id %s LIMIT $%d OFFSET $%d`,
		noteColumns, strings.Join(conds, " AND "), orderBy, dir, dir, limit, offset)

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]domain.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) Get(ctx context.Context, userID, id int64) (*domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1 AND user_id = $2`

	n, err := scanNote(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

func (r *NoteRepository) Create(ctx context.Context, n *domain.Note) (*domain.Note, error) {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	query := `INSERT INTO notes (user_id, title, content, tags, pinned)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + noteColumns

	created, err := scanNote(r.db.QueryRow(ctx, query, n.UserID, n.Title, n.Content, tags, n.Pinned))
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return created, nil
}

func (r *NoteRepository) Update(ctx context.Context, userID, id int64, p domain.NotePatch) (*domain.Note, error) {
	var set setClause
	if p.Title.Set {
		set.add("title", p.Title.Value)
	}
	if p.Content.Set {
		set.add("content", p.Content.Value)
	}
	if p.Tags.Set {
		tags := p.Tags.Value
		if tags == nil {
			tags = []string{}
		}
		set.add("tags", tags)
	}
	if p.Pinned.Set {
		set.add("pinned", p.Pinned.Value)
	}
	set.raw("updated_at = now()")
	idIdx := set.arg(id)
	userIdx := set.arg(userID)

	query := fmt.Sprintf(`UPDATE notes SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`,
		set.String(), idIdx, userIdx, noteColumns)

	n, err := scanNote(r.db.QueryRow(ctx, query, set.args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	return n, nil
}

func (r *NoteRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}
