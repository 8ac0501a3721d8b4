package service

import (
	"github.com/google/uuid"
	"github.com/strideclub/stride/internal/domain"
)

// Notifier pushes live social events to connected clients. Implemented by
// the ws hub; services treat it as fire-and-forget and tolerate a nil value.
type Notifier interface {
	NotifyFriendRequest(req *domain.FriendRequest)
	NotifyFriendAccepted(accepterID uuid.UUID, friendship *domain.Friendship)
	NotifyReactionSet(reaction *domain.Reaction, removed bool)
	NotifyCommentAdded(comment *domain.Comment)
	NotifyCommentDeleted(key domain.ActivityKey, commentID uuid.UUID)
}
