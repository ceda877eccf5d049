package model

import "time"

const (
	MinPriority     = 1
	MaxPriority     = 4
	DefaultPriority = 2
)

func ValidPriority(p int) bool {
	return p >= MinPriority && p <= MaxPriority
}

// Todo is the central entity. Nullable columns are pointers so that the
// query engine can tell "absent" apart from a zero value.
type Todo struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Priority    int          `json:"priority"`
	Completed   bool         `json:"completed"`
	CompletedAt *time.Time   `json:"completed_at"`
	DueDate     *time.Time   `json:"due_date"`
	CategoryID  *string      `json:"category_id"`
	Category    *CategoryRef `json:"category,omitempty"`
	GroupID     *string      `json:"group_id"`
	Group       *GroupRef    `json:"group,omitempty"`
	TagIDs      []string     `json:"tag_ids"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// CategoryRef is the slice of a Category embedded in todo responses.
type CategoryRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

// GroupRef is the slice of a Group embedded in todo responses.
type GroupRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
