package domain

import "time"

type Comment struct {
	ID            int64     `json:"id"`
	BlogID        int64     `json:"blog"`
	CommentedByID int64     `json:"-"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CommentEntry is a comment listing row with the commenter's identity joined.
type CommentEntry struct {
	ID          int64       `json:"id"`
	Content     string      `json:"content"`
	CommentedBy UserPreview `json:"commentedBy"`
	CreatedAt   time.Time   `json:"createdAt"`
}
