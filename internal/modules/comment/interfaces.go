package comment

import (
	"context"

	"megablog/internal/domain"
)

type CommentRepositoryInterface interface {
	Create(ctx context.Context, c *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	UpdateContent(ctx context.Context, id int64, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id int64) error
	ListForBlog(ctx context.Context, blogID int64) ([]domain.CommentEntry, error)
	CountForBlog(ctx context.Context, blogID int64) (int64, error)
}

type BlogCheckerInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Blog, error)
}

type UserReaderInterface interface {
	ListPreviews(ctx context.Context, ids []int64) (map[int64]domain.UserPreview, error)
}

// Notifier fans comment events out to live feed subscribers.
type Notifier interface {
	Broadcast(blogID int64, event Event)
}
