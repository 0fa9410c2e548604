package domain

import "time"

// Like is an edge between a blog and the user who liked it.
// The (blog, likedBy) pair is unique in the store.
type Like struct {
	ID        int64     `json:"id"`
	BlogID    int64     `json:"blog"`
	LikedByID int64     `json:"likedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// LikeEntry is a like listing row with the liker's identity and whether
// the row belongs to the requesting viewer.
type LikeEntry struct {
	LikedByID int64       `json:"likedBy"`
	Liker     UserPreview `json:"liker"`
	IsLiked   bool        `json:"isLiked"`
}
