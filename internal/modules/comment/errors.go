package comment

import "errors"

var (
	ErrNoSuchBlog    = errors.New("blog not found")
	ErrNoSuchComment = errors.New("comment not found")
	ErrForbidden     = errors.New("viewer may not touch this comment")
	ErrEmptyContent  = errors.New("comment content is empty")
)
