package user

import "megablog/internal/domain"

// RegisterRequest arrives as multipart form fields next to the avatar file.
type RegisterRequest struct {
	FirstName string `form:"fName" binding:"required"`
	LastName  string `form:"lName" binding:"required"`
	Username  string `form:"uName" binding:"required,min=3"`
	Email     string `form:"email" binding:"required,email"`
	Password  string `form:"password" binding:"required,min=6"`
}

// LoginRequest accepts a username or an email as the identifier.
type LoginRequest struct {
	Username string `json:"uName"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type UpdateDetailsRequest struct {
	FirstName string `json:"fName" binding:"required"`
	LastName  string `json:"lName" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Profile is the aggregated user view: identity plus the relationship
// graph around it, enriched relative to the requesting viewer.
type Profile struct {
	ID             int64                `json:"id"`
	Username       string               `json:"uName"`
	FirstName      string               `json:"fName"`
	LastName       string               `json:"lName"`
	AvatarURL      string               `json:"avatar"`
	CoverImgURL    string               `json:"coverImg,omitempty"`
	Followers      []domain.FollowEntry `json:"followers"`
	FollowerCount  int64                `json:"followerCount"`
	Followings     []domain.FollowEntry `json:"followings"`
	FollowingCount int64                `json:"followingCount"`
}
