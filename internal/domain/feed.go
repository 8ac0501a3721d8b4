package domain

import "time"

// FeedEntry is a friend's activity tagged with that friend's profile info.
type FeedEntry struct {
	Activity
	FriendUsername    string  `json:"friend_username"`
	FriendDisplayName string  `json:"friend_display_name"`
	FriendAvatarURL   *string `json:"friend_avatar_url,omitempty"`
}

// Feed is one merged, sorted, capped snapshot of friend activity. Reactions
// and Comments are keyed by ActivityKey.String().
type Feed struct {
	Entries   []FeedEntry           `json:"entries"`
	Reactions map[string][]Reaction `json:"reactions"`
	Comments  map[string][]Comment  `json:"comments"`
	BuiltAt   time.Time             `json:"built_at"`
}
