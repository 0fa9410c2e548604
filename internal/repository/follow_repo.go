package repository

import (
	"context"
	"time"

	"megablog/internal/database"
	"megablog/internal/domain"

	"gorm.io/gorm"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

type followModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	BloggerID  int64     `gorm:"column:blogger_id;uniqueIndex:idx_blogger_follower;index"`
	FollowerID int64     `gorm:"column:follower_id;uniqueIndex:idx_blogger_follower;index"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (followModel) TableName() string { return "follows" }

func toDomainFollow(m followModel) *domain.Follow {
	return &domain.Follow{
		ID:         m.ID,
		BloggerID:  m.BloggerID,
		FollowerID: m.FollowerID,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *FollowRepository) Create(ctx context.Context, bloggerID, followerID int64) (*domain.Follow, error) {
	m := followModel{
		BloggerID:  bloggerID,
		FollowerID: followerID,
		CreatedAt:  time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).Create(&m).Error
	if err != nil {
		if database.IsDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return toDomainFollow(m), nil
}

// DeleteEdge removes the (blogger, follower) edge and reports whether one
// existed.
func (r *FollowRepository) DeleteEdge(ctx context.Context, bloggerID, followerID int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Where("blogger_id = ? AND follower_id = ?", bloggerID, followerID).
		Delete(&followModel{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *FollowRepository) Exists(ctx context.Context, bloggerID, followerID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&followModel{}).
		Where("blogger_id = ? AND follower_id = ?", bloggerID, followerID).
		Count(&count).Error
	return count > 0, err
}

// followEntryRow joins an edge with the counterpart user's preview fields
// and the viewer-relative follow flag, all in one query with an explicit
// projection list.
type followEntryRow struct {
	UserID    int64  `gorm:"column:user_id"`
	Username  string `gorm:"column:u_name"`
	FirstName string `gorm:"column:f_name"`
	LastName  string `gorm:"column:l_name"`
	AvatarURL string `gorm:"column:avatar_url"`
	DoFollow  bool   `gorm:"column:do_follow"`
}

// ListFollowers returns the users following bloggerID, each flagged with
// whether viewerID follows that user too.
func (r *FollowRepository) ListFollowers(ctx context.Context, bloggerID, viewerID int64) ([]domain.FollowEntry, error) {
	var rows []followEntryRow
	err := r.db.WithContext(ctx).
		Table("follows").
		Select(`users.id AS user_id, users.u_name, users.f_name, users.l_name, users.avatar_url,
			EXISTS(SELECT 1 FROM follows f2 WHERE f2.blogger_id = users.id AND f2.follower_id = ?) AS do_follow`, viewerID).
		Joins("JOIN users ON users.id = follows.follower_id").
		Where("follows.blogger_id = ?", bloggerID).
		Order("follows.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return entriesFromRows(rows), nil
}

// ListFollowing returns the users bloggerID follows, with the same
// viewer-relative flag.
func (r *FollowRepository) ListFollowing(ctx context.Context, followerID, viewerID int64) ([]domain.FollowEntry, error) {
	var rows []followEntryRow
	err := r.db.WithContext(ctx).
		Table("follows").
		Select(`users.id AS user_id, users.u_name, users.f_name, users.l_name, users.avatar_url,
			EXISTS(SELECT 1 FROM follows f2 WHERE f2.blogger_id = users.id AND f2.follower_id = ?) AS do_follow`, viewerID).
		Joins("JOIN users ON users.id = follows.blogger_id").
		Where("follows.follower_id = ?", followerID).
		Order("follows.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return entriesFromRows(rows), nil
}

func (r *FollowRepository) CountFollowers(ctx context.Context, bloggerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&followModel{}).
		Where("blogger_id = ?", bloggerID).
		Count(&count).Error
	return count, err
}

func (r *FollowRepository) CountFollowing(ctx context.Context, followerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&followModel{}).
		Where("follower_id = ?", followerID).
		Count(&count).Error
	return count, err
}

func entriesFromRows(rows []followEntryRow) []domain.FollowEntry {
	out := make([]domain.FollowEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.FollowEntry{
			User: domain.UserPreview{
				ID:        row.UserID,
				Username:  row.Username,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				AvatarURL: row.AvatarURL,
			},
			DoFollow: row.DoFollow,
		})
	}
	return out
}
