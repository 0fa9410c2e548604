package like

import (
	"context"
	"errors"

	"megablog/internal/domain"
	"megablog/internal/repository"

	"gorm.io/gorm"
)

// Service maintains the like edges. Liking your own blog is allowed.
type Service struct {
	likes LikeRepositoryInterface
	blogs BlogCheckerInterface
}

func NewService(likes LikeRepositoryInterface, blogs BlogCheckerInterface) *Service {
	return &Service{likes: likes, blogs: blogs}
}

// Toggle flips the viewer's like on a readable blog and reports the
// resulting state together with the fresh like count.
func (s *Service) Toggle(ctx context.Context, blogID, viewerID int64) (bool, int64, error) {
	if err := s.readableBlog(ctx, blogID, viewerID); err != nil {
		return false, 0, err
	}

	liked := true
	existed, err := s.likes.DeleteEdge(ctx, blogID, viewerID)
	if err != nil {
		return false, 0, err
	}
	if existed {
		liked = false
	} else if _, err := s.likes.Create(ctx, blogID, viewerID); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			return false, 0, err
		}
	}

	count, err := s.likes.CountForBlog(ctx, blogID)
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

// ListForBlog returns the like edges for a readable blog with the liker
// identities joined; each entry flags whether it belongs to the viewer.
func (s *Service) ListForBlog(ctx context.Context, blogID, viewerID int64) ([]domain.LikeEntry, int64, error) {
	if err := s.readableBlog(ctx, blogID, viewerID); err != nil {
		return nil, 0, err
	}

	entries, err := s.likes.ListForBlog(ctx, blogID, viewerID)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.likes.CountForBlog(ctx, blogID)
	if err != nil {
		return nil, 0, err
	}
	return entries, count, nil
}

func (s *Service) readableBlog(ctx context.Context, blogID, viewerID int64) error {
	blog, err := s.blogs.GetByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoSuchBlog
		}
		return err
	}
	if !blog.ReadableBy(viewerID) {
		return ErrForbidden
	}
	return nil
}
