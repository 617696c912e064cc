package models

import "time"

// Blog is a post together with the comments it owns. AssignedEditor is nil
// until an Admin assigns the post; after that it never changes.
type Blog struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	AssignedEditor *EditorRef `json:"assignedEditor"`
	Comments       []Comment  `json:"comments"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// EditorRef is the public projection of the assigned editor.
type EditorRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Comment belongs to exactly one blog; UserID is its author.
type Comment struct {
	ID        string    `json:"id"`
	BlogID    string    `json:"-"`
	UserID    string    `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlogPatch is a partial update. Empty fields keep the stored value, so an
// empty string can never clear a title or content.
type BlogPatch struct {
	Title   string
	Content string
}

// Empty reports whether the patch changes nothing.
func (p BlogPatch) Empty() bool {
	return p.Title == "" && p.Content == ""
}

// Apply returns the values stored after applying p to title and content.
func (p BlogPatch) Apply(title, content string) (string, string) {
	if p.Title != "" {
		title = p.Title
	}
	if p.Content != "" {
		content = p.Content
	}
	return title, content
}
