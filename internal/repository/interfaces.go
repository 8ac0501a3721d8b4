package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/strideclub/stride/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	SearchByUsername(ctx context.Context, prefix string, limit int) ([]domain.User, error)
}

type FriendRepository interface {
	CreateRequest(ctx context.Context, req *domain.FriendRequest) error
	GetRequestByID(ctx context.Context, id uuid.UUID) (*domain.FriendRequest, error)
	GetRequestByUsers(ctx context.Context, senderID, receiverID uuid.UUID) (*domain.FriendRequest, error)
	ListIncomingRequests(ctx context.Context, userID uuid.UUID) ([]domain.FriendRequest, error)
	ListOutgoingRequests(ctx context.Context, userID uuid.UUID) ([]domain.FriendRequest, error)
	DeleteRequest(ctx context.Context, id uuid.UUID) error
	// ConfirmRequest deletes the pending request and inserts the friendship
	// in a single transaction. Returns false if the request was already gone.
	ConfirmRequest(ctx context.Context, requestID uuid.UUID, friendship *domain.Friendship) (bool, error)
	ListFriends(ctx context.Context, userID uuid.UUID) ([]domain.Friendship, error)
	DeleteFriendship(ctx context.Context, user1ID, user2ID uuid.UUID) error
	AreFriends(ctx context.Context, userA, userB uuid.UUID) (bool, error)
}

type AnnotationRepository interface {
	GetReaction(ctx context.Context, key domain.ActivityKey, reactorID uuid.UUID) (*domain.Reaction, error)
	CreateReaction(ctx context.Context, reaction *domain.Reaction) error
	UpdateReactionType(ctx context.Context, id uuid.UUID, t domain.ReactionType) error
	DeleteReaction(ctx context.Context, id uuid.UUID) error
	ListReactions(ctx context.Context, key domain.ActivityKey) ([]domain.Reaction, error)
	CreateComment(ctx context.Context, comment *domain.Comment) error
	GetComment(ctx context.Context, key domain.ActivityKey, id uuid.UUID) (*domain.Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
	ListComments(ctx context.Context, key domain.ActivityKey) ([]domain.Comment, error)
}

// ActivitySource is the read/write contract over the activity store. The
// aggregation core only ever calls ListByOwner; Create exists for the
// recording endpoint.
type ActivitySource interface {
	Create(ctx context.Context, activity *domain.Activity) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Activity, error)
}

// ProfileStore serves the per-user stats documents consumed by the
// leaderboard. GetStats returns (nil, nil) when no document exists.
type ProfileStore interface {
	GetStats(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error)
}
