package follow

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
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, bloggerID, followerID int64) (*domain.Follow, error) {
	args := m.Called(ctx, bloggerID, followerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Follow), args.Error(1)
}

func (m *MockFollowRepository) DeleteEdge(ctx context.Context, bloggerID, followerID int64) (bool, error) {
	args := m.Called(ctx, bloggerID, followerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) ListFollowers(ctx context.Context, bloggerID, viewerID int64) ([]domain.FollowEntry, error) {
	args := m.Called(ctx, bloggerID, viewerID)
	return args.Get(0).([]domain.FollowEntry), args.Error(1)
}

func (m *MockFollowRepository) ListFollowing(ctx context.Context, followerID, viewerID int64) ([]domain.FollowEntry, error) {
	args := m.Called(ctx, followerID, viewerID)
	return args.Get(0).([]domain.FollowEntry), args.Error(1)
}

type MockUserChecker struct {
	mock.Mock
}

func (m *MockUserChecker) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestService_Toggle_CreatesEdge(t *testing.T) {
	mockFollows := new(MockFollowRepository)
	mockUsers := new(MockUserChecker)

	mockUsers.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	mockFollows.On("DeleteEdge", mock.Anything, int64(1), int64(7)).Return(false, nil)
	mockFollows.On("Create", mock.Anything, int64(1), int64(7)).Return(&domain.Follow{ID: 5, BloggerID: 1, FollowerID: 7}, nil)

	service := NewService(mockFollows, mockUsers)

	followed, err := service.Toggle(context.Background(), 1, 7)
	assert.NoError(t, err)
	assert.True(t, followed)
}

func TestService_Toggle_RemovesExistingEdge(t *testing.T) {
	mockFollows := new(MockFollowRepository)
	mockUsers := new(MockUserChecker)

	mockUsers.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	mockFollows.On("DeleteEdge", mock.Anything, int64(1), int64(7)).Return(true, nil)

	service := NewService(mockFollows, mockUsers)

	followed, err := service.Toggle(context.Background(), 1, 7)
	assert.NoError(t, err)
	assert.False(t, followed)
	mockFollows.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Toggle_SelfFollowRejected(t *testing.T) {
	service := NewService(new(MockFollowRepository), new(MockUserChecker))

	_, err := service.Toggle(context.Background(), 7, 7)
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestService_Toggle_UnknownBlogger(t *testing.T) {
	mockFollows := new(MockFollowRepository)
	mockUsers := new(MockUserChecker)

	mockUsers.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockFollows, mockUsers)

	_, err := service.Toggle(context.Background(), 404, 7)
	assert.ErrorIs(t, err, ErrNoSuchUser)
}

func TestService_Toggle_ConcurrentInsertStillFollowed(t *testing.T) {
	// Another request wins the insert race; the edge exists either way.
	mockFollows := new(MockFollowRepository)
	mockUsers := new(MockUserChecker)

	mockUsers.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1}, nil)
	mockFollows.On("DeleteEdge", mock.Anything, int64(1), int64(7)).Return(false, nil)
	mockFollows.On("Create", mock.Anything, int64(1), int64(7)).Return(nil, repository.ErrDuplicate)

	service := NewService(mockFollows, mockUsers)

	followed, err := service.Toggle(context.Background(), 1, 7)
	assert.NoError(t, err)
	assert.True(t, followed)
}

func TestService_Followers_ViewerRelative(t *testing.T) {
	mockFollows := new(MockFollowRepository)

	entries := []domain.FollowEntry{
		{User: domain.UserPreview{ID: 2, Username: "mutual"}, DoFollow: true},
		{User: domain.UserPreview{ID: 3, Username: "stranger"}, DoFollow: false},
	}
	mockFollows.On("ListFollowers", mock.Anything, int64(7), int64(7)).Return(entries, nil)

	service := NewService(mockFollows, new(MockUserChecker))

	got, err := service.Followers(context.Background(), 7, 7)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.True(t, got[0].DoFollow)
	assert.False(t, got[1].DoFollow)
}
