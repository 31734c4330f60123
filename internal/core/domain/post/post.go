package post

import "errors"

// Validation errors surfaced before any I/O happens.
var (
	ErrEmptyUsername = errors.New("username must be a non-empty string")
	ErrEmptyContent  = errors.New("content must be a non-empty string")
)

// Post is a single immutable short text post. CreatedAt is an ISO-8601 (RFC 3339)
// UTC timestamp string and doubles as the display sort key.
type Post struct {
	ID           string `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	Content      string `json:"content" db:"content"`
	CreatedAt    string `json:"createdAt" db:"created_at"`
	AttributedTo string `json:"attributedTo" db:"attributed_to"`
}

// SortKey derives the composite secondary-index key. It must stay in lock-step
// with Username and CreatedAt whenever the post is persisted.
func (p *Post) SortKey() string {
	return p.Username + "#" + p.CreatedAt
}

// CreatePostRequest represents the request to create a new post
type CreatePostRequest struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}
