package comment

import (
	"context"
	"testing"

	"megablog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	args := m.Called(ctx, c)
	if c != nil {
		c.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) UpdateContent(ctx context.Context, id int64, content string) (*domain.Comment, error) {
	args := m.Called(ctx, id, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommentRepository) ListForBlog(ctx context.Context, blogID int64) ([]domain.CommentEntry, error) {
	args := m.Called(ctx, blogID)
	return args.Get(0).([]domain.CommentEntry), args.Error(1)
}

func (m *MockCommentRepository) CountForBlog(ctx context.Context, blogID int64) (int64, error) {
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

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) ListPreviews(ctx context.Context, ids []int64) (map[int64]domain.UserPreview, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]domain.UserPreview), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Broadcast(blogID int64, event Event) {
	m.Called(blogID, event)
}

func TestService_Add_BroadcastsEvent(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockBlogs := new(MockBlogChecker)
	mockUsers := new(MockUserReader)
	mockNotifier := new(MockNotifier)

	mockBlogs.On("GetByID", mock.Anything, int64(3)).Return(&domain.Blog{ID: 3, AuthorID: 1, IsPublished: true}, nil)
	mockComments.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockUsers.On("ListPreviews", mock.Anything, []int64{7}).Return(map[int64]domain.UserPreview{
		7: {ID: 7, Username: "commenter"},
	}, nil)
	mockNotifier.On("Broadcast", int64(3), mock.MatchedBy(func(e Event) bool {
		return e.Type == EventCreated && e.Comment != nil && e.Comment.CommentedBy.Username == "commenter"
	})).Return()

	service := NewService(mockComments, mockBlogs, mockUsers, mockNotifier)

	entry, err := service.Add(context.Background(), 3, 7, AddCommentRequest{Content: "  nice post  "})

	assert.NoError(t, err)
	assert.Equal(t, "nice post", entry.Content)
	assert.Equal(t, "commenter", entry.CommentedBy.Username)
	mockNotifier.AssertExpectations(t)
}

func TestService_Add_BlankContent(t *testing.T) {
	mockBlogs := new(MockBlogChecker)
	mockBlogs.On("GetByID", mock.Anything, int64(3)).Return(&domain.Blog{ID: 3, IsPublished: true}, nil)

	service := NewService(new(MockCommentRepository), mockBlogs, new(MockUserReader), nil)

	_, err := service.Add(context.Background(), 3, 7, AddCommentRequest{Content: "   "})
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestService_Add_DraftForbidden(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockBlogs := new(MockBlogChecker)

	mockBlogs.On("GetByID", mock.Anything, int64(3)).Return(&domain.Blog{ID: 3, AuthorID: 1, IsPublished: false}, nil)

	service := NewService(mockComments, mockBlogs, new(MockUserReader), nil)

	_, err := service.Add(context.Background(), 3, 7, AddCommentRequest{Content: "hello"})
	assert.ErrorIs(t, err, ErrForbidden)
	mockComments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Add_UnknownBlog(t *testing.T) {
	mockBlogs := new(MockBlogChecker)
	mockBlogs.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(new(MockCommentRepository), mockBlogs, new(MockUserReader), nil)

	_, err := service.Add(context.Background(), 404, 7, AddCommentRequest{Content: "hello"})
	assert.ErrorIs(t, err, ErrNoSuchBlog)
}

func TestService_Update_AuthorOnly(t *testing.T) {
	mockComments := new(MockCommentRepository)

	stored := &domain.Comment{ID: 5, BlogID: 3, CommentedByID: 1, Content: "original"}
	mockComments.On("GetByID", mock.Anything, int64(5)).Return(stored, nil)

	service := NewService(mockComments, new(MockBlogChecker), new(MockUserReader), nil)

	_, err := service.Update(context.Background(), 5, 7, UpdateCommentRequest{Content: "hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)
	mockComments.AssertNotCalled(t, "UpdateContent", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Update_Success(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockUsers := new(MockUserReader)
	mockNotifier := new(MockNotifier)

	stored := &domain.Comment{ID: 5, BlogID: 3, CommentedByID: 7, Content: "original"}
	updated := &domain.Comment{ID: 5, BlogID: 3, CommentedByID: 7, Content: "edited"}
	mockComments.On("GetByID", mock.Anything, int64(5)).Return(stored, nil)
	mockComments.On("UpdateContent", mock.Anything, int64(5), "edited").Return(updated, nil)
	mockUsers.On("ListPreviews", mock.Anything, []int64{7}).Return(map[int64]domain.UserPreview{7: {ID: 7}}, nil)
	mockNotifier.On("Broadcast", int64(3), mock.MatchedBy(func(e Event) bool {
		return e.Type == EventUpdated
	})).Return()

	service := NewService(mockComments, new(MockBlogChecker), mockUsers, mockNotifier)

	entry, err := service.Update(context.Background(), 5, 7, UpdateCommentRequest{Content: "edited"})
	assert.NoError(t, err)
	assert.Equal(t, "edited", entry.Content)
	mockNotifier.AssertExpectations(t)
}

func TestService_Delete_AuthorOnly(t *testing.T) {
	mockComments := new(MockCommentRepository)

	stored := &domain.Comment{ID: 5, BlogID: 3, CommentedByID: 1}
	mockComments.On("GetByID", mock.Anything, int64(5)).Return(stored, nil)

	service := NewService(mockComments, new(MockBlogChecker), new(MockUserReader), nil)

	err := service.Delete(context.Background(), 5, 7)
	assert.ErrorIs(t, err, ErrForbidden)
	mockComments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_Delete_BroadcastsDeletion(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockNotifier := new(MockNotifier)

	stored := &domain.Comment{ID: 5, BlogID: 3, CommentedByID: 7}
	mockComments.On("GetByID", mock.Anything, int64(5)).Return(stored, nil)
	mockComments.On("Delete", mock.Anything, int64(5)).Return(nil)
	mockNotifier.On("Broadcast", int64(3), mock.MatchedBy(func(e Event) bool {
		return e.Type == EventDeleted && e.ID == 5
	})).Return()

	service := NewService(mockComments, new(MockBlogChecker), new(MockUserReader), mockNotifier)

	assert.NoError(t, service.Delete(context.Background(), 5, 7))
	mockNotifier.AssertExpectations(t)
}

func TestService_ListForBlog_OldestFirstPreserved(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockBlogs := new(MockBlogChecker)

	mockBlogs.On("GetByID", mock.Anything, int64(3)).Return(&domain.Blog{ID: 3, IsPublished: true}, nil)
	mockComments.On("ListForBlog", mock.Anything, int64(3)).Return([]domain.CommentEntry{
		{ID: 1, Content: "first"},
		{ID: 2, Content: "second"},
	}, nil)
	mockComments.On("CountForBlog", mock.Anything, int64(3)).Return(int64(2), nil)

	service := NewService(mockComments, mockBlogs, new(MockUserReader), nil)

	entries, count, err := service.ListForBlog(context.Background(), 3, 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, "first", entries[0].Content)
}
