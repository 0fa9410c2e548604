package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"megablog/internal/domain"

	"gorm.io/gorm"
)

type BlogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

type blogModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	AuthorID    int64     `gorm:"column:author_id;index"`
	Title       string    `gorm:"column:title"`
	Content     string    `gorm:"column:content"`
	Images      string    `gorm:"column:images"` // JSON-encoded []string
	IsPublished bool      `gorm:"column:is_published;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (blogModel) TableName() string { return "blogs" }

func toDomainBlog(m blogModel) *domain.Blog {
	return &domain.Blog{
		ID:          m.ID,
		AuthorID:    m.AuthorID,
		Title:       m.Title,
		Content:     m.Content,
		Images:      imagesFromString(m.Images),
		IsPublished: m.IsPublished,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toBlogModel(b *domain.Blog) blogModel {
	return blogModel{
		ID:          b.ID,
		AuthorID:    b.AuthorID,
		Title:       b.Title,
		Content:     b.Content,
		Images:      imagesToString(b.Images),
		IsPublished: b.IsPublished,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func imagesToString(images []string) string {
	if len(images) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(images)
	return string(data)
}

func imagesFromString(s string) []string {
	if s == "" || s == "[]" {
		return []string{}
	}
	var images []string
	if err := json.Unmarshal([]byte(s), &images); err != nil {
		return []string{}
	}
	return images
}

// ListFilter narrows the public listing. Only published blogs are ever
// returned; the filter cannot widen visibility.
type ListFilter struct {
	Query    string
	AuthorID int64
	SortBy   string
	SortDesc bool
	Page     int
	Limit    int
}

var sortableColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
}

func (r *BlogRepository) Create(ctx context.Context, b *domain.Blog) error {
	m := toBlogModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBlog(m)
	return nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*domain.Blog, error) {
	var m blogModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBlog(m), nil
}

// ListPublished returns one page of published blogs plus the total count
// for the filter.
func (r *BlogRepository) ListPublished(ctx context.Context, f ListFilter) ([]domain.Blog, int64, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 10
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	q := r.db.WithContext(ctx).Model(&blogModel{}).Where("is_published = ?", true)
	if f.AuthorID != 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if term := strings.TrimSpace(f.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortableColumns[f.SortBy]
	if !ok {
		column = "created_at"
		f.SortDesc = true
	}
	direction := "ASC"
	if f.SortDesc {
		direction = "DESC"
	}

	var rows []blogModel
	err := q.Order(column + " " + direction).
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.Blog, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBlog(m))
	}
	return out, total, nil
}

// ListPublishedByIDs keeps only the published blogs among ids, preserving
// the input order. Used for the favourites listing.
func (r *BlogRepository) ListPublishedByIDs(ctx context.Context, ids []int64) ([]domain.Blog, error) {
	if len(ids) == 0 {
		return []domain.Blog{}, nil
	}
	var rows []blogModel
	err := r.db.WithContext(ctx).
		Where("id IN ? AND is_published = ?", ids, true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]blogModel, len(rows))
	for _, m := range rows {
		byID[m.ID] = m
	}
	out := make([]domain.Blog, 0, len(rows))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, *toDomainBlog(m))
		}
	}
	return out, nil
}

func (r *BlogRepository) Update(ctx context.Context, b *domain.Blog) error {
	tx := r.db.WithContext(ctx).
		Model(&blogModel{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"title":      b.Title,
			"content":    b.Content,
			"images":     imagesToString(b.Images),
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BlogRepository) SetPublished(ctx context.Context, id int64, published bool) (*domain.Blog, error) {
	tx := r.db.WithContext(ctx).
		Model(&blogModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_published": published, "updated_at": time.Now().UTC()})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *BlogRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&blogModel{}).Error
}
