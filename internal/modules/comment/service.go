package comment

import (
	"context"
	"errors"
	"strings"

	"megablog/internal/domain"

	"gorm.io/gorm"
)

// Event is one live feed frame. Deleted events carry the comment id only.
type Event struct {
	Type    string               `json:"type"`
	BlogID  int64                `json:"blog"`
	Comment *domain.CommentEntry `json:"comment,omitempty"`
	ID      int64                `json:"id,omitempty"`
}

const (
	EventCreated = "comment_created"
	EventUpdated = "comment_updated"
	EventDeleted = "comment_deleted"
)

// Service owns comment content. Comments live on readable blogs and only
// their author may edit or remove them.
type Service struct {
	comments CommentRepositoryInterface
	blogs    BlogCheckerInterface
	users    UserReaderInterface
	notifier Notifier
}

func NewService(comments CommentRepositoryInterface, blogs BlogCheckerInterface, users UserReaderInterface, notifier Notifier) *Service {
	return &Service{comments: comments, blogs: blogs, users: users, notifier: notifier}
}

// Add writes a comment on a blog the viewer can read and announces it on
// the blog's live feed.
func (s *Service) Add(ctx context.Context, blogID, viewerID int64, req AddCommentRequest) (*domain.CommentEntry, error) {
	if err := s.readableBlog(ctx, blogID, viewerID); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	row := &domain.Comment{
		BlogID:        blogID,
		CommentedByID: viewerID,
		Content:       content,
	}
	if err := s.comments.Create(ctx, row); err != nil {
		return nil, err
	}

	entry, err := s.entryFor(ctx, row)
	if err != nil {
		return nil, err
	}

	s.broadcast(blogID, Event{Type: EventCreated, BlogID: blogID, Comment: entry})
	return entry, nil
}

// ListForBlog returns the comments on a readable blog, oldest first.
func (s *Service) ListForBlog(ctx context.Context, blogID, viewerID int64) ([]domain.CommentEntry, int64, error) {
	if err := s.readableBlog(ctx, blogID, viewerID); err != nil {
		return nil, 0, err
	}

	entries, err := s.comments.ListForBlog(ctx, blogID)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.comments.CountForBlog(ctx, blogID)
	if err != nil {
		return nil, 0, err
	}
	return entries, count, nil
}

// Update rewrites the comment text, author only.
func (s *Service) Update(ctx context.Context, commentID, viewerID int64, req UpdateCommentRequest) (*domain.CommentEntry, error) {
	existing, err := s.ownComment(ctx, commentID, viewerID)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	updated, err := s.comments.UpdateContent(ctx, commentID, content)
	if err != nil {
		return nil, err
	}

	entry, err := s.entryFor(ctx, updated)
	if err != nil {
		return nil, err
	}

	s.broadcast(existing.BlogID, Event{Type: EventUpdated, BlogID: existing.BlogID, Comment: entry})
	return entry, nil
}

// Delete removes the comment, author only.
func (s *Service) Delete(ctx context.Context, commentID, viewerID int64) error {
	existing, err := s.ownComment(ctx, commentID, viewerID)
	if err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}

	s.broadcast(existing.BlogID, Event{Type: EventDeleted, BlogID: existing.BlogID, ID: commentID})
	return nil
}

// CanSubscribe reports whether the viewer may attach to the blog's feed.
func (s *Service) CanSubscribe(ctx context.Context, blogID, viewerID int64) error {
	return s.readableBlog(ctx, blogID, viewerID)
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

func (s *Service) ownComment(ctx context.Context, commentID, viewerID int64) (*domain.Comment, error) {
	existing, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSuchComment
		}
		return nil, err
	}
	if existing.CommentedByID != viewerID {
		return nil, ErrForbidden
	}
	return existing, nil
}

func (s *Service) entryFor(ctx context.Context, row *domain.Comment) (*domain.CommentEntry, error) {
	previews, err := s.users.ListPreviews(ctx, []int64{row.CommentedByID})
	if err != nil {
		return nil, err
	}
	return &domain.CommentEntry{
		ID:          row.ID,
		Content:     row.Content,
		CommentedBy: previews[row.CommentedByID],
		CreatedAt:   row.CreatedAt,
	}, nil
}

func (s *Service) broadcast(blogID int64, event Event) {
	if s.notifier != nil {
		s.notifier.Broadcast(blogID, event)
	}
}
