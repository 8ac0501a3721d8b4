package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/strideclub/stride/internal/domain"
	"github.com/strideclub/stride/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrCannotRequestSelf      = errors.New("cannot send a friend request to yourself")
	ErrTargetNotFound         = errors.New("user not found")
	ErrAlreadyFriends         = errors.New("you are already friends")
	ErrRequestAlreadySent     = errors.New("a pending request to this user already exists")
	ErrRequestAlreadyReceived = errors.New("this user has already sent you a request")
	ErrRequestNotFound        = errors.New("friend request not found")
	ErrNotRequestReceiver     = errors.New("only the request receiver can perform this action")
	ErrNotRequestSender       = errors.New("only the request sender can cancel")
)

// FriendService owns the friendship state machine. Per unordered user pair
// the states are none → pending(requester) → accepted, with pending → none
// via decline/cancel and accepted → none via RemoveFriend. There is no path
// back to pending from accepted without passing through none.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
	notifier   Notifier
	logger     *zap.Logger
}

func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository, logger *zap.Logger) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (s *FriendService) SetNotifier(n Notifier) {
	s.notifier = n
}

// SendRequest sends a friend request by target username.
//
// When the target already has a pending request to the sender the call
// fails with ErrRequestAlreadyReceived rather than creating a second edge;
// the caller is expected to accept the existing request instead. This is
// the resolution rule for simultaneous mutual requests: only the earlier
// request survives.
func (s *FriendService) SendRequest(ctx context.Context, senderID uuid.UUID, targetUsername string) (*domain.FriendRequest, error) {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if target == nil {
		return nil, ErrTargetNotFound
	}

	if senderID == target.ID {
		return nil, ErrCannotRequestSelf
	}

	already, err := s.friendRepo.AreFriends(ctx, senderID, target.ID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, ErrAlreadyFriends
	}

	existing, err := s.friendRepo.GetRequestByUsers(ctx, senderID, target.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == domain.RequestStatusPending {
		return nil, ErrRequestAlreadySent
	}

	reverse, err := s.friendRepo.GetRequestByUsers(ctx, target.ID, senderID)
	if err != nil {
		return nil, err
	}
	if reverse != nil && reverse.Status == domain.RequestStatusPending {
		return nil, ErrRequestAlreadyReceived
	}

	req := &domain.FriendRequest{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: target.ID,
		Status:     domain.RequestStatusPending,
		CreatedAt:  time.Now(),
	}

	if err := s.friendRepo.CreateRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("creating friend request: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyFriendRequest(req)
	}

	return req, nil
}

// AcceptRequest promotes a pending request to a friendship. The promotion
// is transactional in the repository; a request that vanished in the
// meantime (accepted or declined elsewhere) reports ErrRequestNotFound,
// which callers treat as a stale-view condition rather than a failure.
func (s *FriendService) AcceptRequest(ctx context.Context, userID, requestID uuid.UUID) (*domain.Friendship, error) {
	req, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.ReceiverID != userID {
		return nil, ErrNotRequestReceiver
	}

	u1, u2 := domain.CanonicalPair(req.SenderID, req.ReceiverID)
	friendship := &domain.Friendship{
		ID:        uuid.New(),
		User1ID:   u1,
		User2ID:   u2,
		CreatedAt: time.Now(),
	}

	ok, err := s.friendRepo.ConfirmRequest(ctx, requestID, friendship)
	if err != nil {
		return nil, fmt.Errorf("confirming friend request: %w", err)
	}
	if !ok {
		return nil, ErrRequestNotFound
	}

	if s.notifier != nil {
		s.notifier.NotifyFriendAccepted(userID, friendship)
	}

	return friendship, nil
}

// DeclineRequest rejects (deletes) a pending request received by the user.
func (s *FriendService) DeclineRequest(ctx context.Context, userID, requestID uuid.UUID) error {
	req, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrRequestNotFound
	}
	if req.ReceiverID != userID {
		return ErrNotRequestReceiver
	}

	return s.friendRepo.DeleteRequest(ctx, requestID)
}

// CancelRequest withdraws a pending request sent by the user.
func (s *FriendService) CancelRequest(ctx context.Context, userID, requestID uuid.UUID) error {
	req, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return ErrRequestNotFound
	}
	if req.SenderID != userID {
		return ErrNotRequestSender
	}

	return s.friendRepo.DeleteRequest(ctx, requestID)
}

// RemoveFriend deletes the accepted edge for the pair. Canonical pair
// ordering guarantees the single stored row is found regardless of which
// side initiates the removal.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, otherUserID uuid.UUID) error {
	u1, u2 := domain.CanonicalPair(userID, otherUserID)
	return s.friendRepo.DeleteFriendship(ctx, u1, u2)
}

// ListFriends returns all friendships for a user.
func (s *FriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]domain.Friendship, error) {
	friends, err := s.friendRepo.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	if friends == nil {
		friends = []domain.Friendship{}
	}
	return friends, nil
}

// ListIncomingRequests returns pending requests received by the user.
func (s *FriendService) ListIncomingRequests(ctx context.Context, userID uuid.UUID) ([]domain.FriendRequest, error) {
	reqs, err := s.friendRepo.ListIncomingRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	if reqs == nil {
		reqs = []domain.FriendRequest{}
	}
	return reqs, nil
}

// ListOutgoingRequests returns pending requests sent by the user.
func (s *FriendService) ListOutgoingRequests(ctx context.Context, userID uuid.UUID) ([]domain.FriendRequest, error) {
	reqs, err := s.friendRepo.ListOutgoingRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	if reqs == nil {
		reqs = []domain.FriendRequest{}
	}
	return reqs, nil
}

// AreFriends reports whether an accepted edge exists for the pair.
func (s *FriendService) AreFriends(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	return s.friendRepo.AreFriends(ctx, userA, userB)
}

// HasPendingFrom reports whether a pending request from sender to receiver exists.
func (s *FriendService) HasPendingFrom(ctx context.Context, senderID, receiverID uuid.UUID) (bool, error) {
	req, err := s.friendRepo.GetRequestByUsers(ctx, senderID, receiverID)
	if err != nil {
		return false, err
	}
	return req != nil && req.Status == domain.RequestStatusPending, nil
}
