package repository

import (
	"context"
	"strings"
	"time"

	"megablog/internal/database"
	"megablog/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	FirstName    string    `gorm:"column:f_name"`
	LastName     string    `gorm:"column:l_name"`
	Username     string    `gorm:"column:u_name;uniqueIndex"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	AvatarURL    string    `gorm:"column:avatar_url"`
	CoverImgURL  *string   `gorm:"column:cover_img_url"`
	RefreshToken *string   `gorm:"column:refresh_token"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

type savedBlogModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex:idx_user_blog"`
	BlogID    int64     `gorm:"column:blog_id;uniqueIndex:idx_user_blog"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (savedBlogModel) TableName() string { return "saved_blogs" }

func toDomainUser(m userModel) *domain.User {
	var cover, refresh string
	if m.CoverImgURL != nil {
		cover = *m.CoverImgURL
	}
	if m.RefreshToken != nil {
		refresh = *m.RefreshToken
	}

	return &domain.User{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		AvatarURL:    m.AvatarURL,
		CoverImgURL:  cover,
		RefreshToken: refresh,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	var cover, refresh *string
	if u.CoverImgURL != "" {
		v := u.CoverImgURL
		cover = &v
	}
	if u.RefreshToken != "" {
		v := u.RefreshToken
		refresh = &v
	}

	return userModel{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     strings.ToLower(strings.TrimSpace(u.Username)),
		Email:        strings.ToLower(strings.TrimSpace(u.Email)),
		PasswordHash: u.PasswordHash,
		AvatarURL:    u.AvatarURL,
		CoverImgURL:  cover,
		RefreshToken: refresh,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		if database.IsDuplicate(tx.Error) {
			return ErrDuplicate
		}
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

// GetByIdentifier resolves a login identifier that may be a username or an
// email address.
func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	ident := strings.ToLower(strings.TrimSpace(identifier))
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("u_name = ? OR email = ?", ident, ident).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("u_name = ? OR email = ?",
			strings.ToLower(strings.TrimSpace(username)),
			strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) UpdateNames(ctx context.Context, id int64, firstName, lastName string) (*domain.User, error) {
	return r.updateFields(ctx, id, map[string]any{
		"f_name": firstName,
		"l_name": lastName,
	})
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id int64, avatarURL string) (*domain.User, error) {
	return r.updateFields(ctx, id, map[string]any{"avatar_url": avatarURL})
}

func (r *UserRepository) UpdateCoverImage(ctx context.Context, id int64, coverURL string) (*domain.User, error) {
	return r.updateFields(ctx, id, map[string]any{"cover_img_url": coverURL})
}

// UpdatePasswordHash persists a new digest. The caller re-hashes only when
// the password actually changed.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	_, err := r.updateFields(ctx, id, map[string]any{"password_hash": hash})
	return err
}

// SetRefreshToken overwrites the stored refresh token. An empty value
// clears it, which immediately invalidates the previous session.
func (r *UserRepository) SetRefreshToken(ctx context.Context, id int64, token string) error {
	var value any
	if token != "" {
		value = token
	}
	tx := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"refresh_token": value, "updated_at": time.Now().UTC()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) SaveBlog(ctx context.Context, userID, blogID int64) error {
	err := r.db.WithContext(ctx).Create(&savedBlogModel{
		UserID:    userID,
		BlogID:    blogID,
		CreatedAt: time.Now().UTC(),
	}).Error
	if err != nil && database.IsDuplicate(err) {
		return ErrDuplicate
	}
	return err
}

func (r *UserRepository) RemoveSavedBlog(ctx context.Context, userID, blogID int64) error {
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Delete(&savedBlogModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SavedBlogIDs lists the viewer's saved-content references, newest first.
func (r *UserRepository) SavedBlogIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&savedBlogModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("blog_id", &ids).Error
	return ids, err
}

// ListPreviews fetches the public projection for a set of users in one
// query, keyed by id.
func (r *UserRepository) ListPreviews(ctx context.Context, ids []int64) (map[int64]domain.UserPreview, error) {
	out := make(map[int64]domain.UserPreview, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []userModel
	err := r.db.WithContext(ctx).
		Select("id", "u_name", "f_name", "l_name", "avatar_url").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, m := range rows {
		out[m.ID] = domain.UserPreview{
			ID:        m.ID,
			Username:  m.Username,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			AvatarURL: m.AvatarURL,
		}
	}
	return out, nil
}

func (r *UserRepository) updateFields(ctx context.Context, id int64, fields map[string]any) (*domain.User, error) {
	fields["updated_at"] = time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", id).
		Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) DB() *gorm.DB {
	return r.db
}
