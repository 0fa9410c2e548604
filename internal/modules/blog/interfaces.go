package blog

import (
	"context"
	"mime/multipart"

	"megablog/internal/domain"
	"megablog/internal/repository"
)

// BlogRepositoryInterface narrows the repository to what the resolver needs.
type BlogRepositoryInterface interface {
	Create(ctx context.Context, b *domain.Blog) error
	GetByID(ctx context.Context, id int64) (*domain.Blog, error)
	ListPublished(ctx context.Context, f repository.ListFilter) ([]domain.Blog, int64, error)
	Update(ctx context.Context, b *domain.Blog) error
	SetPublished(ctx context.Context, id int64, published bool) (*domain.Blog, error)
	Delete(ctx context.Context, id int64) error
}

// UserReaderInterface supplies author previews and the favourites list.
type UserReaderInterface interface {
	ListPreviews(ctx context.Context, ids []int64) (map[int64]domain.UserPreview, error)
	SaveBlog(ctx context.Context, userID, blogID int64) error
	RemoveSavedBlog(ctx context.Context, userID, blogID int64) error
}

// FollowCheckerInterface answers "does the viewer follow this author".
type FollowCheckerInterface interface {
	Exists(ctx context.Context, bloggerID, followerID int64) (bool, error)
}

// LikeReaderInterface supplies the engagement edges for the detail view.
type LikeReaderInterface interface {
	ListForBlog(ctx context.Context, blogID, viewerID int64) ([]domain.LikeEntry, error)
	CountForBlog(ctx context.Context, blogID int64) (int64, error)
	Exists(ctx context.Context, blogID, likedByID int64) (bool, error)
}

type CommentReaderInterface interface {
	ListForBlog(ctx context.Context, blogID int64) ([]domain.CommentEntry, error)
	CountForBlog(ctx context.Context, blogID int64) (int64, error)
}

// MediaStoreInterface is the external image-hosting capability.
type MediaStoreInterface interface {
	Upload(ctx context.Context, fh *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, url string) error
}
