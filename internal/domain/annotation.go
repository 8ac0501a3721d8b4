package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReactionType is a closed set. Anything outside it is rejected before
// hitting storage.
type ReactionType string

const (
	ReactionFire  ReactionType = "🔥"
	ReactionFlex  ReactionType = "💪"
	ReactionClap  ReactionType = "👏"
	ReactionParty ReactionType = "🎉"
)

func (t ReactionType) Valid() bool {
	switch t {
	case ReactionFire, ReactionFlex, ReactionClap, ReactionParty:
		return true
	}
	return false
}

// Reaction holds at most one row per (activity, reactor).
type Reaction struct {
	ID         uuid.UUID    `json:"id"`
	OwnerID    uuid.UUID    `json:"owner_id"`
	ActivityID uuid.UUID    `json:"activity_id"`
	ReactorID  uuid.UUID    `json:"reactor_id"`
	Type       ReactionType `json:"type"`
	CreatedAt  time.Time    `json:"created_at"`
	// Joined fields
	ReactorUsername    string `json:"reactor_username,omitempty"`
	ReactorDisplayName string `json:"reactor_display_name,omitempty"`
}

func (r *Reaction) Key() ActivityKey {
	return ActivityKey{OwnerID: r.OwnerID, ActivityID: r.ActivityID}
}

// Comment is append-only; deletable only by its author.
type Comment struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	ActivityID uuid.UUID `json:"activity_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
	// Joined fields
	AuthorUsername    string `json:"author_username,omitempty"`
	AuthorDisplayName string `json:"author_display_name,omitempty"`
}

func (c *Comment) Key() ActivityKey {
	return ActivityKey{OwnerID: c.OwnerID, ActivityID: c.ActivityID}
}
