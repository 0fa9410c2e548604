package user

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"strings"

	"megablog/internal/domain"
	"megablog/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service contains the credential store operations and the profile queries.
type Service struct {
	users   UserRepositoryInterface
	follows FollowReaderInterface
	blogs   BlogReaderInterface
	tokens  tokenService
	media   MediaStoreInterface
}

func NewService(
	users UserRepositoryInterface,
	follows FollowReaderInterface,
	blogs BlogReaderInterface,
	tokens tokenService,
	media MediaStoreInterface,
) *Service {
	return &Service{
		users:   users,
		follows: follows,
		blogs:   blogs,
		tokens:  tokens,
		media:   media,
	}
}

// Register creates the account. The avatar is uploaded first; if the row
// cannot be created afterwards the upload is deleted so no orphaned media
// remains.
func (s *Service) Register(ctx context.Context, req RegisterRequest, avatar *multipart.FileHeader) (*domain.User, error) {
	if avatar == nil {
		return nil, ErrAvatarRequired
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	avatarURL, err := s.media.Upload(ctx, avatar)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.deleteMedia(ctx, avatarURL)
		return nil, err
	}

	user := &domain.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		AvatarURL:    avatarURL,
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.deleteMedia(ctx, avatarURL)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	user.Sanitize()
	return user, nil
}

// Login verifies the credentials, issues both tokens and persists the new
// refresh token, overwriting any prior one. At most one refresh token
// is valid per user.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" {
		return nil, ErrNoSuchUser
	}

	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSuchUser
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	user.Sanitize()
	return &LoginResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout clears the stored refresh token, which immediately invalidates it
// as a source of new access tokens.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	return s.users.SetRefreshToken(ctx, userID, "")
}

// Refresh rotates the session. The presented token must carry a valid
// signature AND textually match the value stored on the user record:
// a previously issued token dies the instant a newer one is persisted.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if user.RefreshToken == "" || refreshToken != user.RefreshToken {
		return nil, ErrInvalidRefreshToken
	}

	accessToken, newRefresh, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: newRefresh}, nil
}

// Profile aggregates a user with the relationship graph around them; the
// follow flags are relative to viewerID, not the subject.
func (s *Service) Profile(ctx context.Context, subjectID, viewerID int64) (*Profile, error) {
	user, err := s.users.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSuchUser
		}
		return nil, err
	}

	followers, err := s.follows.ListFollowers(ctx, subjectID, viewerID)
	if err != nil {
		return nil, err
	}
	followings, err := s.follows.ListFollowing(ctx, subjectID, viewerID)
	if err != nil {
		return nil, err
	}
	followerCount, err := s.follows.CountFollowers(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	followingCount, err := s.follows.CountFollowing(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		ID:             user.ID,
		Username:       user.Username,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		AvatarURL:      user.AvatarURL,
		CoverImgURL:    user.CoverImgURL,
		Followers:      followers,
		FollowerCount:  followerCount,
		Followings:     followings,
		FollowingCount: followingCount,
	}, nil
}

// FavouriteBlogs lists the viewer's saved blogs, published ones only.
// A blog unpublished after being saved drops out of the listing.
func (s *Service) FavouriteBlogs(ctx context.Context, userID int64) ([]domain.Blog, error) {
	ids, err := s.users.SavedBlogIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.blogs.ListPublishedByIDs(ctx, ids)
}

func (s *Service) UpdateDetails(ctx context.Context, userID int64, req UpdateDetailsRequest) (*domain.User, error) {
	user, err := s.users.UpdateNames(ctx, userID, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName))
	if err != nil {
		return nil, err
	}
	user.Sanitize()
	return user, nil
}

// UpdateAvatar uploads the replacement first; the old file is deleted only
// after the record points at the new one.
func (s *Service) UpdateAvatar(ctx context.Context, userID int64, file *multipart.FileHeader) (*domain.User, error) {
	current, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	newURL, err := s.media.Upload(ctx, file)
	if err != nil {
		return nil, err
	}

	user, err := s.users.UpdateAvatar(ctx, userID, newURL)
	if err != nil {
		s.deleteMedia(ctx, newURL)
		return nil, err
	}

	if current.AvatarURL != "" {
		s.deleteMedia(ctx, current.AvatarURL)
	}

	user.Sanitize()
	return user, nil
}

func (s *Service) UpdateCoverImage(ctx context.Context, userID int64, file *multipart.FileHeader) (*domain.User, error) {
	current, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	newURL, err := s.media.Upload(ctx, file)
	if err != nil {
		return nil, err
	}

	user, err := s.users.UpdateCoverImage(ctx, userID, newURL)
	if err != nil {
		s.deleteMedia(ctx, newURL)
		return nil, err
	}

	if current.CoverImgURL != "" {
		s.deleteMedia(ctx, current.CoverImgURL)
	}

	user.Sanitize()
	return user, nil
}

// ChangePassword verifies the current password and re-hashes only the new
// value. Unrelated profile updates never touch the digest.
func (s *Service) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, userID, string(hash))
}

func (s *Service) issueTokens(ctx context.Context, user *domain.User) (string, string, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Username, user.Email)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return "", "", err
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// deleteMedia is the best-effort compensating action; its own failure is
// logged, never surfaced.
func (s *Service) deleteMedia(ctx context.Context, url string) {
	if err := s.media.Delete(ctx, url); err != nil {
		log.Printf("media cleanup failed url=%s err=%v", url, err)
	}
}
