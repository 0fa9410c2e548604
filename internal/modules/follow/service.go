package follow

import (
	"context"
	"errors"

	"megablog/internal/domain"
	"megablog/internal/repository"

	"gorm.io/gorm"
)

// Service maintains the follow graph.
type Service struct {
	follows FollowRepositoryInterface
	users   UserCheckerInterface
}

func NewService(follows FollowRepositoryInterface, users UserCheckerInterface) *Service {
	return &Service{follows: follows, users: users}
}

// Toggle flips the viewer's follow edge towards bloggerID and reports the
// resulting state. Concurrent toggles land on the unique pair index, so a
// duplicate insert means another request already created the edge.
func (s *Service) Toggle(ctx context.Context, bloggerID, followerID int64) (bool, error) {
	if bloggerID == followerID {
		return false, ErrSelfFollow
	}

	if _, err := s.users.GetByID(ctx, bloggerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNoSuchUser
		}
		return false, err
	}

	existed, err := s.follows.DeleteEdge(ctx, bloggerID, followerID)
	if err != nil {
		return false, err
	}
	if existed {
		return false, nil
	}

	if _, err := s.follows.Create(ctx, bloggerID, followerID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// Followers lists the users following subjectID, each flagged with whether
// the viewer follows them.
func (s *Service) Followers(ctx context.Context, subjectID, viewerID int64) ([]domain.FollowEntry, error) {
	return s.follows.ListFollowers(ctx, subjectID, viewerID)
}

// Following lists the users subjectID follows, flagged the same way.
func (s *Service) Following(ctx context.Context, subjectID, viewerID int64) ([]domain.FollowEntry, error) {
	return s.follows.ListFollowing(ctx, subjectID, viewerID)
}
