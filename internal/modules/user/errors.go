package user

import "errors"

var (
	ErrUserExists          = errors.New("username or email already registered")
	ErrNoSuchUser          = errors.New("no such user")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("refresh token expired or already used")
	ErrAvatarRequired      = errors.New("avatar is required")
)
