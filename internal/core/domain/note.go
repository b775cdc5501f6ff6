package domain

import "time"

type Note struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotePatch lists the note attributes a caller asked to change.
type NotePatch struct {
	Title   Optional[string]   `json:"title"`
	Content Optional[string]   `json:"content"`
	Tags    Optional[[]string] `json:"tags"`
	Pinned  Optional[bool]     `json:"pinned"`
}

// Empty reports whether the patch touches no attribute.
func (p NotePatch) Empty() bool {
	return !p.Title.Set && !p.Content.Set && !p.Tags.Set && !p.Pinned.Set
}

// NoteFilter narrows and orders a note listing.
type NoteFilter struct {
	Search string
	Tag    string
	Pinned *bool
	SortBy string
	Order  string
	Limit  int
	Offset int
}
