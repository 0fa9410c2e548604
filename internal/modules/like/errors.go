package like

import "errors"

var (
	ErrNoSuchBlog = errors.New("blog not found")
	ErrForbidden  = errors.New("blog not readable by viewer")
)
