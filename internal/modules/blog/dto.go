package blog

import "megablog/internal/domain"

const maxBlogImages = 3

type CreateBlogRequest struct {
	Title   string `form:"title" binding:"required"`
	Content string `form:"content" binding:"required"`
}

// UpdateBlogRequest is a partial update; blank fields keep their value.
type UpdateBlogRequest struct {
	Title   string `form:"title" validate:"omitempty,min=1"`
	Content string `form:"content" validate:"omitempty,min=1"`
}

// ListRequest mirrors the public listing query string.
type ListRequest struct {
	Query    string `form:"query"`
	AuthorID int64  `form:"author"`
	SortBy   string `form:"sortBy"`
	SortDir  string `form:"sortDir"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// Author is the blog author joined with the viewer-relative follow flag.
type Author struct {
	domain.UserPreview
	DoFollow bool `json:"doFollow"`
}

// Detail is the fully joined blog view: author, engagement edges and
// precomputed counts, all shaped relative to the requesting viewer.
type Detail struct {
	domain.Blog
	Author       Author               `json:"authorDetails"`
	Likes        []domain.LikeEntry   `json:"likes"`
	LikeCount    int64                `json:"likeCount"`
	IsLiked      bool                 `json:"isLiked"`
	Comments     []domain.CommentEntry `json:"comments"`
	CommentCount int64                `json:"commentCount"`
}

// ListItem is one listing row with the author preview joined.
type ListItem struct {
	domain.Blog
	Author domain.UserPreview `json:"authorDetails"`
}

type ListResult struct {
	Items      []ListItem `json:"blogs"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int64      `json:"totalPages"`
}
