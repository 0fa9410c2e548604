package repository

import (
	"context"
	"time"

	"megablog/internal/database"
	"megablog/internal/domain"

	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

type likeModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	BlogID    int64     `gorm:"column:blog_id;uniqueIndex:idx_blog_liker;index"`
	LikedByID int64     `gorm:"column:liked_by_id;uniqueIndex:idx_blog_liker;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (likeModel) TableName() string { return "likes" }

func (r *LikeRepository) Create(ctx context.Context, blogID, likedByID int64) (*domain.Like, error) {
	m := likeModel{
		BlogID:    blogID,
		LikedByID: likedByID,
		CreatedAt: time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).Create(&m).Error
	if err != nil {
		if database.IsDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &domain.Like{
		ID:        m.ID,
		BlogID:    m.BlogID,
		LikedByID: m.LikedByID,
		CreatedAt: m.CreatedAt,
	}, nil
}

// DeleteEdge removes the (blog, likedBy) edge and reports whether one
// existed.
func (r *LikeRepository) DeleteEdge(ctx context.Context, blogID, likedByID int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("blog_id = ? AND liked_by_id = ?", blogID, likedByID).
		Delete(&likeModel{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *LikeRepository) Exists(ctx context.Context, blogID, likedByID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&likeModel{}).
		Where("blog_id = ? AND liked_by_id = ?", blogID, likedByID).
		Count(&count).Error
	return count > 0, err
}

type likeEntryRow struct {
	LikedByID int64  `gorm:"column:liked_by_id"`
	Username  string `gorm:"column:u_name"`
	FirstName string `gorm:"column:f_name"`
	LastName  string `gorm:"column:l_name"`
	AvatarURL string `gorm:"column:avatar_url"`
}

// ListForBlog returns the blog's likes joined with each liker's identity;
// IsLiked marks the viewer's own row.
func (r *LikeRepository) ListForBlog(ctx context.Context, blogID, viewerID int64) ([]domain.LikeEntry, error) {
	var rows []likeEntryRow
	err := r.db.WithContext(ctx).
		Table("likes").
		Select("likes.liked_by_id, users.u_name, users.f_name, users.l_name, users.avatar_url").
		Joins("JOIN users ON users.id = likes.liked_by_id").
		Where("likes.blog_id = ?", blogID).
		Order("likes.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.LikeEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.LikeEntry{
			LikedByID: row.LikedByID,
			Liker: domain.UserPreview{
				ID:        row.LikedByID,
				Username:  row.Username,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				AvatarURL: row.AvatarURL,
			},
			IsLiked: row.LikedByID == viewerID,
		})
	}
	return out, nil
}

func (r *LikeRepository) CountForBlog(ctx context.Context, blogID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&likeModel{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	return count, err
}
