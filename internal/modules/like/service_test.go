package like

import (
	"context"
	"testing"

	"megablog/internal/domain"
	"megablog/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Create(ctx context.Context, blogID, likedByID int64) (*domain.Like, error) {
	args := m.Called(ctx, blogID, likedByID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Like), args.Error(1)
}

func (m *MockLikeRepository) DeleteEdge(ctx context.Context, blogID, likedByID int64) (bool, error) {
	args := m.Called(ctx, blogID, likedByID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) ListForBlog(ctx context.Context, blogID, viewerID int64) ([]domain.LikeEntry, error) {
	args := m.Called(ctx, blogID, viewerID)
	return args.Get(0).([]domain.LikeEntry), args.Error(1)
}

func (m *MockLikeRepository) CountForBlog(ctx context.Context, blogID int64) (int64, error) {
	args := m.Called(ctx, blogID)
	return args.Get(0).(int64), args.Error(1)
}

type MockBlogChecker struct {
	mock.Mock
}

func (m *MockBlogChecker) GetByID(ctx context.Context, id int64) (*domain.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}

func TestService_Toggle_Likes(t *testing.T) {
	mockLikes := new(MockLikeRepository)
	mockBlogs := new(MockBlogChecker)

	mockBlogs.On("GetByID", mock.Anything, int64(3)).Return(&domain.Blog{ID: 3, AuthorID: 1, IsPublished: true}, nil)
	mockLikes.On("DeleteEdge", mock.Anything, int64(3), int64(7)).Return(false, nil)
	mockLikes.On("Create", mock.Anything, int64(3), int64(7)).Return(&domain.Like{ID: 1, BlogID: 3, LikedByID: 7}, nil)
	mockLikes.On("CountForBlog", mock.Anything, int64(3)).Return(int64(4), nil)

	service := NewService(mockLikes, mockBlogs)

	liked, count, err := service.Toggle(context.Background(), 3, 7)
	assert.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(4), count)
}

func TestService_Toggle_Unlikes(t *testing.T) {
	mockLikes := new(MockLikeRepository)
	mockBlogs := new(MockBlogChecker)

	mockBlogs.On("GetByID", mock.Anything, int64(3)).Return(&domain.Blog{ID: 3, AuthorID: 1, IsPublished: true}, nil)
	mockLikes.On("DeleteEdge", mock.Anything, int64(3), int64(7)).Return(true, nil)
	mockLikes.On("CountForBlog", mock.Anything, int64(3)).Return(int64(3), nil)

	service := NewService(mockLikes, mockBlogs)

	liked, count, err := service.Toggle(context.Background(), 3, 7)
	assert.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(3), count)
	mockLikes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Toggle_OwnBlogAllowed(t *testing.T) {
	mockLikes := new(MockLikeRepository)
	mockBlogs := new(MockBlogChecker)

	mockBlogs.On("GetByID", mock.Anything, int64(3)).Return(&domain.Blog{ID: 3, AuthorID: 7, IsPublished: true}, nil)
	mockLikes.On("DeleteEdge", mock.Anything, int64(3), int64(7)).Return(false, nil)
	mockLikes.On("Create", mock.Anything, int64(3), int64(7)).Return(&domain.Like{ID: 1, BlogID: 3, LikedByID: 7}, nil)
	mockLikes.On("CountForBlog", mock.Anything, int64(3)).Return(int64(1), nil)

	service := NewService(mockLikes, mockBlogs)

	liked, _, err := service.Toggle(context.Background(), 3, 7)
	assert.NoError(t, err)
	assert.True(t, liked)
}

func TestService_Toggle_ConcurrentInsertStillLiked(t *testing.T) {
	mockLikes := new(MockLikeRepository)
	mockBlogs := new(MockBlogChecker)

	mockBlogs.On("GetByID", mock.Anything, int64(3)).Return(&domain.Blog{ID: 3, AuthorID: 1, IsPublished: true}, nil)
	mockLikes.On("DeleteEdge", mock.Anything, int64(3), int64(7)).Return(false, nil)
	mockLikes.On("Create", mock.Anything, int64(3), int64(7)).Return(nil, repository.ErrDuplicate)
	mockLikes.On("CountForBlog", mock.Anything, int64(3)).Return(int64(1), nil)

	service := NewService(mockLikes, mockBlogs)

	liked, _, err := service.Toggle(context.Background(), 3, 7)
	assert.NoError(t, err)
	assert.True(t, liked)
}

func TestService_Toggle_DraftForbidden(t *testing.T) {
	mockLikes := new(MockLikeRepository)
	mockBlogs := new(MockBlogChecker)

	mockBlogs.On("GetByID", mock.Anything, int64(3)).Return(&domain.Blog{ID: 3, AuthorID: 1, IsPublished: false}, nil)

	service := NewService(mockLikes, mockBlogs)

	_, _, err := service.Toggle(context.Background(), 3, 7)
	assert.ErrorIs(t, err, ErrForbidden)
	mockLikes.AssertNotCalled(t, "DeleteEdge", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Toggle_UnknownBlog(t *testing.T) {
	mockBlogs := new(MockBlogChecker)
	mockBlogs.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(new(MockLikeRepository), mockBlogs)

	_, _, err := service.Toggle(context.Background(), 404, 7)
	assert.ErrorIs(t, err, ErrNoSuchBlog)
}

func TestService_ListForBlog_FlagsViewer(t *testing.T) {
	mockLikes := new(MockLikeRepository)
	mockBlogs := new(MockBlogChecker)

	mockBlogs.On("GetByID", mock.Anything, int64(3)).Return(&domain.Blog{ID: 3, AuthorID: 1, IsPublished: true}, nil)
	mockLikes.On("ListForBlog", mock.Anything, int64(3), int64(7)).Return([]domain.LikeEntry{
		{LikedByID: 7, IsLiked: true},
		{LikedByID: 2, IsLiked: false},
	}, nil)
	mockLikes.On("CountForBlog", mock.Anything, int64(3)).Return(int64(2), nil)

	service := NewService(mockLikes, mockBlogs)

	entries, count, err := service.ListForBlog(context.Background(), 3, 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.True(t, entries[0].IsLiked)
	assert.False(t, entries[1].IsLiked)
}
