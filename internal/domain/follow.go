package domain

import "time"

// Follow is a directed edge: follower follows blogger.
// The (blogger, follower) pair is unique in the store.
type Follow struct {
	ID         int64     `json:"id"`
	BloggerID  int64     `json:"blogger"`
	FollowerID int64     `json:"follower"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FollowEntry is a follower/following listing row enriched with the
// counterpart's identity and whether the requesting viewer follows them.
type FollowEntry struct {
	User     UserPreview `json:"user"`
	DoFollow bool        `json:"doFollow"`
}
