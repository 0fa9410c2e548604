package blog

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"strings"

	"megablog/internal/domain"
	"megablog/internal/repository"

	"gorm.io/gorm"
)

// Service owns blog content and its visibility rules. An unpublished blog
// is readable by its author only; every mutation requires ownership.
type Service struct {
	blogs    BlogRepositoryInterface
	users    UserReaderInterface
	follows  FollowCheckerInterface
	likes    LikeReaderInterface
	comments CommentReaderInterface
	media    MediaStoreInterface
}

func NewService(
	blogs BlogRepositoryInterface,
	users UserReaderInterface,
	follows FollowCheckerInterface,
	likes LikeReaderInterface,
	comments CommentReaderInterface,
	media MediaStoreInterface,
) *Service {
	return &Service{
		blogs:    blogs,
		users:    users,
		follows:  follows,
		likes:    likes,
		comments: comments,
		media:    media,
	}
}

// Create stores a new blog. Images are uploaded before the row is written;
// if the write fails every uploaded image is deleted again.
func (s *Service) Create(ctx context.Context, authorID int64, req CreateBlogRequest, images []*multipart.FileHeader) (*domain.Blog, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	if len(images) > maxBlogImages {
		return nil, ErrTooManyFiles
	}

	urls := make([]string, 0, len(images))
	for _, fh := range images {
		url, err := s.media.Upload(ctx, fh)
		if err != nil {
			s.deleteMedia(ctx, urls)
			return nil, err
		}
		urls = append(urls, url)
	}

	blog := &domain.Blog{
		AuthorID: authorID,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		Images:   urls,
	}

	if err := s.blogs.Create(ctx, blog); err != nil {
		s.deleteMedia(ctx, urls)
		return nil, err
	}
	return blog, nil
}

// GetByID resolves a single blog for the viewer: the author joined with the
// viewer-relative follow flag, the like edges with the liker identities,
// the comments with the commenter identities, and both counts.
func (s *Service) GetByID(ctx context.Context, blogID, viewerID int64) (*Detail, error) {
	blog, err := s.blogs.GetByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !blog.ReadableBy(viewerID) {
		return nil, ErrForbidden
	}

	previews, err := s.users.ListPreviews(ctx, []int64{blog.AuthorID})
	if err != nil {
		return nil, err
	}
	doFollow := false
	if blog.AuthorID != viewerID {
		doFollow, err = s.follows.Exists(ctx, blog.AuthorID, viewerID)
		if err != nil {
			return nil, err
		}
	}

	likes, err := s.likes.ListForBlog(ctx, blogID, viewerID)
	if err != nil {
		return nil, err
	}
	likeCount, err := s.likes.CountForBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}
	isLiked, err := s.likes.Exists(ctx, blogID, viewerID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListForBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}
	commentCount, err := s.comments.CountForBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}

	return &Detail{
		Blog:         *blog,
		Author:       Author{UserPreview: previews[blog.AuthorID], DoFollow: doFollow},
		Likes:        likes,
		LikeCount:    likeCount,
		IsLiked:      isLiked,
		Comments:     comments,
		CommentCount: commentCount,
	}, nil
}

// List pages through published blogs with their author previews joined.
// Page and limit are normalized here so the reported metadata matches the
// rows actually fetched.
func (s *Service) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := repository.ListFilter{
		Query:    strings.TrimSpace(req.Query),
		AuthorID: req.AuthorID,
		SortBy:   req.SortBy,
		SortDesc: req.SortDir != "asc",
		Page:     page,
		Limit:    limit,
	}

	blogs, total, err := s.blogs.ListPublished(ctx, filter)
	if err != nil {
		return nil, err
	}

	items, err := s.withAuthors(ctx, blogs)
	if err != nil {
		return nil, err
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Update rewrites the blog's text and, when new files are sent, replaces
// the image set. Old images are deleted only after the row is updated.
func (s *Service) Update(ctx context.Context, blogID, viewerID int64, req UpdateBlogRequest, images []*multipart.FileHeader) (*domain.Blog, error) {
	blog, err := s.ownedBlog(ctx, blogID, viewerID)
	if err != nil {
		return nil, err
	}
	if len(images) > maxBlogImages {
		return nil, ErrTooManyFiles
	}

	if req.Title != "" {
		blog.Title = strings.TrimSpace(req.Title)
	}
	if req.Content != "" {
		blog.Content = req.Content
	}

	var oldImages []string
	if len(images) > 0 {
		urls := make([]string, 0, len(images))
		for _, fh := range images {
			url, err := s.media.Upload(ctx, fh)
			if err != nil {
				s.deleteMedia(ctx, urls)
				return nil, err
			}
			urls = append(urls, url)
		}
		oldImages = blog.Images
		blog.Images = urls
	}

	if err := s.blogs.Update(ctx, blog); err != nil {
		if len(images) > 0 {
			s.deleteMedia(ctx, blog.Images)
		}
		return nil, err
	}
	s.deleteMedia(ctx, oldImages)
	return blog, nil
}

// TogglePublish flips the publish flag and returns the updated blog.
func (s *Service) TogglePublish(ctx context.Context, blogID, viewerID int64) (*domain.Blog, error) {
	blog, err := s.ownedBlog(ctx, blogID, viewerID)
	if err != nil {
		return nil, err
	}
	return s.blogs.SetPublished(ctx, blogID, !blog.IsPublished)
}

// Delete removes the blog. Its images go first: the row stays in place
// when any image cannot be deleted, so a retry can finish the cleanup.
func (s *Service) Delete(ctx context.Context, blogID, viewerID int64) error {
	blog, err := s.ownedBlog(ctx, blogID, viewerID)
	if err != nil {
		return err
	}

	for _, url := range blog.Images {
		if err := s.media.Delete(ctx, url); err != nil {
			return err
		}
	}
	return s.blogs.Delete(ctx, blogID)
}

// Save bookmarks a readable blog for the viewer. Saving twice is a no-op.
func (s *Service) Save(ctx context.Context, blogID, viewerID int64) error {
	blog, err := s.blogs.GetByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !blog.ReadableBy(viewerID) {
		return ErrForbidden
	}

	if err := s.users.SaveBlog(ctx, viewerID, blogID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil
		}
		return err
	}
	return nil
}

// Unsave removes the bookmark.
func (s *Service) Unsave(ctx context.Context, blogID, viewerID int64) error {
	if err := s.users.RemoveSavedBlog(ctx, viewerID, blogID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotSaved
		}
		return err
	}
	return nil
}

func (s *Service) ownedBlog(ctx context.Context, blogID, viewerID int64) (*domain.Blog, error) {
	blog, err := s.blogs.GetByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !blog.OwnedBy(viewerID) {
		return nil, ErrForbidden
	}
	return blog, nil
}

func (s *Service) withAuthors(ctx context.Context, blogs []domain.Blog) ([]ListItem, error) {
	ids := make([]int64, 0, len(blogs))
	seen := make(map[int64]bool, len(blogs))
	for _, b := range blogs {
		if !seen[b.AuthorID] {
			seen[b.AuthorID] = true
			ids = append(ids, b.AuthorID)
		}
	}

	previews, err := s.users.ListPreviews(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(blogs))
	for _, b := range blogs {
		items = append(items, ListItem{Blog: b, Author: previews[b.AuthorID]})
	}
	return items, nil
}

func (s *Service) deleteMedia(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.media.Delete(ctx, url); err != nil {
			log.Printf("media: failed to delete %s: %v", url, err)
		}
	}
}
