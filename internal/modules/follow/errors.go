package follow

import "errors"

var (
	ErrSelfFollow = errors.New("cannot follow yourself")
	ErrNoSuchUser = errors.New("user not found")
)
