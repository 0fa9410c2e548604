package user

import (
	"context"
	"mime/multipart"

	"megablog/internal/domain"
	jwtsvc "megablog/internal/pkg/jwt"
)

// UserRepositoryInterface narrows the repository to what the service needs.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateNames(ctx context.Context, id int64, firstName, lastName string) (*domain.User, error)
	UpdateAvatar(ctx context.Context, id int64, avatarURL string) (*domain.User, error)
	UpdateCoverImage(ctx context.Context, id int64, coverURL string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	SetRefreshToken(ctx context.Context, id int64, token string) error
	SavedBlogIDs(ctx context.Context, userID int64) ([]int64, error)
}

// FollowReaderInterface supplies the relationship graph around a profile.
type FollowReaderInterface interface {
	ListFollowers(ctx context.Context, bloggerID, viewerID int64) ([]domain.FollowEntry, error)
	ListFollowing(ctx context.Context, followerID, viewerID int64) ([]domain.FollowEntry, error)
	CountFollowers(ctx context.Context, bloggerID int64) (int64, error)
	CountFollowing(ctx context.Context, followerID int64) (int64, error)
}

// BlogReaderInterface resolves saved-content references to readable blogs.
type BlogReaderInterface interface {
	ListPublishedByIDs(ctx context.Context, ids []int64) ([]domain.Blog, error)
}

type tokenService interface {
	GenerateAccessToken(userID int64, username, email string) (string, error)
	GenerateRefreshToken(userID int64) (string, error)
	ParseRefreshToken(tokenStr string) (*jwtsvc.RefreshClaims, error)
}

// MediaStoreInterface is the external image-hosting capability.
type MediaStoreInterface interface {
	Upload(ctx context.Context, fh *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, url string) error
}
