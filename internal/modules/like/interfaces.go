package like

import (
	"context"

	"megablog/internal/domain"
)

type LikeRepositoryInterface interface {
	Create(ctx context.Context, blogID, likedByID int64) (*domain.Like, error)
	DeleteEdge(ctx context.Context, blogID, likedByID int64) (bool, error)
	ListForBlog(ctx context.Context, blogID, viewerID int64) ([]domain.LikeEntry, error)
	CountForBlog(ctx context.Context, blogID int64) (int64, error)
}

type BlogCheckerInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Blog, error)
}
