package ws

import (
	"github.com/google/uuid"
	"github.com/strideclub/stride/internal/domain"
	"go.uber.org/zap"
)

// HubNotifier implements service.Notifier using the WebSocket Hub. Events
// go to the parties who can see them: request receivers, request senders,
// activity owners.
type HubNotifier struct {
	hub    *Hub
	logger *zap.Logger
}

func NewHubNotifier(hub *Hub, logger *zap.Logger) *HubNotifier {
	return &HubNotifier{hub: hub, logger: logger}
}

func (n *HubNotifier) NotifyFriendRequest(req *domain.FriendRequest) {
	evt, err := NewEvent(EventTypeFriendRequest, FriendRequestPayload{FriendRequest: *req})
	if err != nil {
		n.logger.Error("ws notifier: marshal error", zap.Error(err))
		return
	}
	n.hub.SendToUser(req.ReceiverID, evt)
}

func (n *HubNotifier) NotifyFriendAccepted(accepterID uuid.UUID, friendship *domain.Friendship) {
	evt, err := NewEvent(EventTypeFriendAccepted, FriendAcceptedPayload{
		FriendshipID: friendship.ID,
		AccepterID:   accepterID,
	})
	if err != nil {
		n.logger.Error("ws notifier: marshal error", zap.Error(err))
		return
	}
	// The accepter already knows; tell the original sender.
	other := friendship.User1ID
	if other == accepterID {
		other = friendship.User2ID
	}
	n.hub.SendToUser(other, evt)
}

func (n *HubNotifier) NotifyReactionSet(reaction *domain.Reaction, removed bool) {
	eventType := EventTypeReactionAdded
	if removed {
		eventType = EventTypeReactionRemoved
	}
	evt, err := NewEvent(eventType, ReactionPayload{
		Reaction:    *reaction,
		ActivityKey: reaction.Key().String(),
		Removed:     removed,
	})
	if err != nil {
		n.logger.Error("ws notifier: marshal error", zap.Error(err))
		return
	}
	if reaction.OwnerID != reaction.ReactorID {
		n.hub.SendToUser(reaction.OwnerID, evt)
	}
}

func (n *HubNotifier) NotifyCommentAdded(comment *domain.Comment) {
	evt, err := NewEvent(EventTypeCommentAdded, CommentPayload{
		Comment:     *comment,
		ActivityKey: comment.Key().String(),
	})
	if err != nil {
		n.logger.Error("ws notifier: marshal error", zap.Error(err))
		return
	}
	if comment.OwnerID != comment.AuthorID {
		n.hub.SendToUser(comment.OwnerID, evt)
	}
}

func (n *HubNotifier) NotifyCommentDeleted(key domain.ActivityKey, commentID uuid.UUID) {
	evt, err := NewEvent(EventTypeCommentDeleted, CommentDeletedPayload{
		ActivityKey: key.String(),
		CommentID:   commentID,
	})
	if err != nil {
		n.logger.Error("ws notifier: marshal error", zap.Error(err))
		return
	}
	n.hub.SendToUser(key.OwnerID, evt)
}
