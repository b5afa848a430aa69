package model

// Task is the domain model for a single unit of work.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Draft stages a title/description pair before it is committed
// as a new task or applied to an existing one.
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DraftOf returns the editable fields of t.
func DraftOf(t Task) Draft {
	return Draft{Title: t.Title, Description: t.Description}
}

// IsZero reports whether both fields are empty.
func (d Draft) IsZero() bool {
	return d.Title == "" && d.Description == ""
}
