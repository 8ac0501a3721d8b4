package domain

import (
	"time"

	"github.com/google/uuid"
)

const RequestStatusPending = "pending"

type FriendRequest struct {
	ID         uuid.UUID `json:"id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	// Joined fields
	SenderUsername      string `json:"sender_username,omitempty"`
	SenderDisplayName   string `json:"sender_display_name,omitempty"`
	ReceiverUsername    string `json:"receiver_username,omitempty"`
	ReceiverDisplayName string `json:"receiver_display_name,omitempty"`
}

// Friendship is an accepted edge. User1ID/User2ID are stored in canonical
// (sorted-uuid) order so there is exactly one row per unordered pair and
// deletion is visible from either side.
type Friendship struct {
	ID        uuid.UUID `json:"id"`
	User1ID   uuid.UUID `json:"user1_id"`
	User2ID   uuid.UUID `json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`
	// Joined fields
	OtherUserID      uuid.UUID `json:"other_user_id"`
	OtherUsername    string    `json:"other_username"`
	OtherDisplayName string    `json:"other_display_name"`
	OtherAvatarURL   *string   `json:"other_avatar_url,omitempty"`
}

// CanonicalPair orders two user ids the way friendships are stored.
func CanonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}
