package blog

import "errors"

var (
	ErrNotFound     = errors.New("no such blog exists")
	ErrForbidden    = errors.New("not authorized for this blog")
	ErrNoImages     = errors.New("blog images are required")
	ErrTooManyFiles = errors.New("too many blog images")
	ErrNotSaved     = errors.New("blog is not in favourites")
)
