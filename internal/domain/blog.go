package domain

import "time"

type Blog struct {
	ID          int64     `json:"id"`
	AuthorID    int64     `json:"author"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Images      []string  `json:"blogImg"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ReadableBy reports whether the viewer may see this blog. Unpublished
// blogs are visible to their author only.
func (b *Blog) ReadableBy(viewerID int64) bool {
	return b.IsPublished || b.AuthorID == viewerID
}

// OwnedBy reports whether the viewer may mutate this blog.
func (b *Blog) OwnedBy(viewerID int64) bool {
	return b.AuthorID == viewerID
}
