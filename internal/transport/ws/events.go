package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/strideclub/stride/internal/domain"
)

// Event types - Client → Server
const (
	EventTypePing = "ping"
)

// Event types - Server → Client
const (
	EventTypeFriendRequest   = "friend.request"
	EventTypeFriendAccepted  = "friend.accepted"
	EventTypeReactionAdded   = "reaction.added"
	EventTypeReactionRemoved = "reaction.removed"
	EventTypeCommentAdded    = "comment.added"
	EventTypeCommentDeleted  = "comment.deleted"
	EventTypePresence        = "presence"
	EventTypePong            = "pong"
	EventTypeError           = "error"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// --- Server → Client payloads ---

type FriendRequestPayload struct {
	domain.FriendRequest
}

type FriendAcceptedPayload struct {
	FriendshipID uuid.UUID `json:"friendship_id"`
	AccepterID   uuid.UUID `json:"accepter_id"`
}

type ReactionPayload struct {
	domain.Reaction
	ActivityKey string `json:"activity_key"`
	Removed     bool   `json:"removed"`
}

type CommentPayload struct {
	domain.Comment
	ActivityKey string `json:"activity_key"`
}

type CommentDeletedPayload struct {
	ActivityKey string    `json:"activity_key"`
	CommentID   uuid.UUID `json:"comment_id"`
}

type PresencePayload struct {
	UserID uuid.UUID `json:"user_id"`
	Status string    `json:"status"` // "online" | "offline"
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
