package follow

import (
	"context"

	"megablog/internal/domain"
)

type FollowRepositoryInterface interface {
	Create(ctx context.Context, bloggerID, followerID int64) (*domain.Follow, error)
	DeleteEdge(ctx context.Context, bloggerID, followerID int64) (bool, error)
	ListFollowers(ctx context.Context, bloggerID, viewerID int64) ([]domain.FollowEntry, error)
	ListFollowing(ctx context.Context, followerID, viewerID int64) ([]domain.FollowEntry, error)
}

type UserCheckerInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
