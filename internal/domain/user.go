package domain

import "time"

type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"fName"`
	LastName     string    `json:"lName"`
	Username     string    `json:"uName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatar"`
	CoverImgURL  string    `json:"coverImg,omitempty"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Sanitize clears the credential fields before a user leaves the service
// layer. Responses never carry the password hash or the stored refresh token.
func (u *User) Sanitize() {
	u.PasswordHash = ""
	u.RefreshToken = ""
}

// UserPreview is the projection embedded in followers, likes and comments.
type UserPreview struct {
	ID        int64  `json:"id"`
	Username  string `json:"uName"`
	FirstName string `json:"fName,omitempty"`
	LastName  string `json:"lName,omitempty"`
	AvatarURL string `json:"avatar"`
}

func (u *User) Preview() UserPreview {
	return UserPreview{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		AvatarURL: u.AvatarURL,
	}
}
