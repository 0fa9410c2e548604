package repository

import (
	"context"
	"time"

	"megablog/internal/domain"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

type commentModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	BlogID        int64     `gorm:"column:blog_id;index"`
	CommentedByID int64     `gorm:"column:commented_by_id;index"`
	Content       string    `gorm:"column:content"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (commentModel) TableName() string { return "comments" }

func toDomainComment(m commentModel) *domain.Comment {
	return &domain.Comment{
		ID:            m.ID,
		BlogID:        m.BlogID,
		CommentedByID: m.CommentedByID,
		Content:       m.Content,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	m := commentModel{
		BlogID:        c.BlogID,
		CommentedByID: c.CommentedByID,
		Content:       c.Content,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*c = *toDomainComment(m)
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var m commentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainComment(m), nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id int64, content string) (*domain.Comment, error) {
	tx := r.db.WithContext(ctx).
		Model(&commentModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"content": content, "updated_at": time.Now().UTC()})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&commentModel{}).Error
}

type commentEntryRow struct {
	ID            int64     `gorm:"column:id"`
	Content       string    `gorm:"column:content"`
	CommentedByID int64     `gorm:"column:commented_by_id"`
	Username      string    `gorm:"column:u_name"`
	FirstName     string    `gorm:"column:f_name"`
	LastName      string    `gorm:"column:l_name"`
	AvatarURL     string    `gorm:"column:avatar_url"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

// ListForBlog returns the blog's comments joined with each commenter's
// identity, oldest first.
func (r *CommentRepository) ListForBlog(ctx context.Context, blogID int64) ([]domain.CommentEntry, error) {
	var rows []commentEntryRow
	err := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.content, comments.commented_by_id, comments.created_at, users.u_name, users.f_name, users.l_name, users.avatar_url").
		Joins("JOIN users ON users.id = comments.commented_by_id").
		Where("comments.blog_id = ?", blogID).
		Order("comments.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.CommentEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.CommentEntry{
			ID:      row.ID,
			Content: row.Content,
			CommentedBy: domain.UserPreview{
				ID:        row.CommentedByID,
				Username:  row.Username,
				FirstName: row.FirstName,
				LastName:  row.LastName,
				AvatarURL: row.AvatarURL,
			},
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (r *CommentRepository) CountForBlog(ctx context.Context, blogID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&commentModel{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	return count, err
}
