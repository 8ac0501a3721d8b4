package service_test

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/strideclub/stride/internal/domain"
)

// ── Stub user repo ────────────────────────────────────────────────────────

type stubUserRepo struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*domain.User
	byEmail    map[string]uuid.UUID
	byUsername map[string]uuid.UUID
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:       make(map[uuid.UUID]*domain.User),
		byEmail:    make(map[string]uuid.UUID),
		byUsername: make(map[string]uuid.UUID),
	}
}

func (r *stubUserRepo) add(username string) *domain.User {
	u := &domain.User{
		ID:          uuid.New(),
		Email:       username + "@example.com",
		Username:    username,
		DisplayName: strings.ToUpper(username[:1]) + username[1:],
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	r.byUsername[u.Username] = u.ID
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = u.ID
	r.byUsername[u.Username] = u.ID
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUsername[username]
	if !ok {
		return nil, nil
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *stubUserRepo) SearchByUsername(_ context.Context, prefix string, limit int) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.User
	for _, u := range r.byID {
		if strings.HasPrefix(u.Username, prefix) && len(out) < limit {
			out = append(out, *u)
		}
	}
	return out, nil
}

// ── Stub friend repo ──────────────────────────────────────────────────────

type stubFriendRepo struct {
	mu          sync.RWMutex
	requests    map[uuid.UUID]*domain.FriendRequest
	friendships []*domain.Friendship
	users       *stubUserRepo
}

func newStubFriendRepo(users *stubUserRepo) *stubFriendRepo {
	return &stubFriendRepo{
		requests: make(map[uuid.UUID]*domain.FriendRequest),
		users:    users,
	}
}

// befriend installs an accepted edge directly, bypassing the request flow.
func (r *stubFriendRepo) befriend(a, b uuid.UUID) *domain.Friendship {
	u1, u2 := domain.CanonicalPair(a, b)
	f := &domain.Friendship{ID: uuid.New(), User1ID: u1, User2ID: u2}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.friendships = append(r.friendships, f)
	return f
}

func (r *stubFriendRepo) CreateRequest(_ context.Context, req *domain.FriendRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *stubFriendRepo) GetRequestByID(_ context.Context, id uuid.UUID) (*domain.FriendRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *stubFriendRepo) GetRequestByUsers(_ context.Context, senderID, receiverID uuid.UUID) (*domain.FriendRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, req := range r.requests {
		if req.SenderID == senderID && req.ReceiverID == receiverID {
			cp := *req
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubFriendRepo) ListIncomingRequests(_ context.Context, userID uuid.UUID) ([]domain.FriendRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.FriendRequest
	for _, req := range r.requests {
		if req.ReceiverID == userID && req.Status == domain.RequestStatusPending {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *stubFriendRepo) ListOutgoingRequests(_ context.Context, userID uuid.UUID) ([]domain.FriendRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.FriendRequest
	for _, req := range r.requests {
		if req.SenderID == userID && req.Status == domain.RequestStatusPending {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *stubFriendRepo) DeleteRequest(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.requests, id)
	return nil
}

func (r *stubFriendRepo) ConfirmRequest(_ context.Context, requestID uuid.UUID, friendship *domain.Friendship) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[requestID]; !ok {
		return false, nil
	}
	delete(r.requests, requestID)
	cp := *friendship
	r.friendships = append(r.friendships, &cp)
	return true, nil
}

func (r *stubFriendRepo) ListFriends(_ context.Context, userID uuid.UUID) ([]domain.Friendship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Friendship
	for _, f := range r.friendships {
		if f.User1ID != userID && f.User2ID != userID {
			continue
		}
		cp := *f
		cp.OtherUserID = f.User1ID
		if cp.OtherUserID == userID {
			cp.OtherUserID = f.User2ID
		}
		if r.users != nil {
			if u, ok := r.users.byID[cp.OtherUserID]; ok {
				cp.OtherUsername = u.Username
				cp.OtherDisplayName = u.DisplayName
				cp.OtherAvatarURL = u.AvatarURL
			}
		}
		out = append(out, cp)
	}
	return out, nil
}

func (r *stubFriendRepo) DeleteFriendship(_ context.Context, user1ID, user2ID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.friendships {
		if f.User1ID == user1ID && f.User2ID == user2ID {
			r.friendships = append(r.friendships[:i], r.friendships[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubFriendRepo) AreFriends(_ context.Context, userA, userB uuid.UUID) (bool, error) {
	u1, u2 := domain.CanonicalPair(userA, userB)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.friendships {
		if f.User1ID == u1 && f.User2ID == u2 {
			return true, nil
		}
	}
	return false, nil
}

// ── Stub activity source ──────────────────────────────────────────────────

type stubActivitySource struct {
	mu      sync.Mutex
	byOwner map[uuid.UUID][]domain.Activity
	failFor map[uuid.UUID]error
	// gate, when set for an owner, blocks that owner's next fetch until
	// released. fetching is signalled once the fetch is parked.
	gate     map[uuid.UUID]chan struct{}
	fetching chan struct{}
}

func newStubActivitySource() *stubActivitySource {
	return &stubActivitySource{
		byOwner: make(map[uuid.UUID][]domain.Activity),
		failFor: make(map[uuid.UUID]error),
		gate:    make(map[uuid.UUID]chan struct{}),
	}
}

func (s *stubActivitySource) add(a domain.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byOwner[a.OwnerID] = append(s.byOwner[a.OwnerID], a)
}

func (s *stubActivitySource) Create(_ context.Context, a *domain.Activity) error {
	s.add(*a)
	return nil
}

func (s *stubActivitySource) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.Activity, error) {
	s.mu.Lock()
	gate := s.gate[ownerID]
	delete(s.gate, ownerID)
	fetching := s.fetching
	s.mu.Unlock()

	if gate != nil {
		if fetching != nil {
			fetching <- struct{}{}
		}
		<-gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failFor[ownerID]; err != nil {
		return nil, err
	}
	out := make([]domain.Activity, len(s.byOwner[ownerID]))
	copy(out, s.byOwner[ownerID])
	return out, nil
}

// ── Stub annotation repo ──────────────────────────────────────────────────

type stubAnnotationRepo struct {
	mu        sync.RWMutex
	reactions map[string][]*domain.Reaction
	comments  map[string][]*domain.Comment
	failFor   map[string]error
}

func newStubAnnotationRepo() *stubAnnotationRepo {
	return &stubAnnotationRepo{
		reactions: make(map[string][]*domain.Reaction),
		comments:  make(map[string][]*domain.Comment),
		failFor:   make(map[string]error),
	}
}

func (r *stubAnnotationRepo) GetReaction(_ context.Context, key domain.ActivityKey, reactorID uuid.UUID) (*domain.Reaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, re := range r.reactions[key.String()] {
		if re.ReactorID == reactorID {
			cp := *re
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubAnnotationRepo) CreateReaction(_ context.Context, reaction *domain.Reaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *reaction
	k := reaction.Key().String()
	r.reactions[k] = append(r.reactions[k], &cp)
	return nil
}

func (r *stubAnnotationRepo) UpdateReactionType(_ context.Context, id uuid.UUID, t domain.ReactionType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, list := range r.reactions {
		for _, re := range list {
			if re.ID == id {
				re.Type = t
				return nil
			}
		}
	}
	return nil
}

func (r *stubAnnotationRepo) DeleteReaction(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, list := range r.reactions {
		for i, re := range list {
			if re.ID == id {
				r.reactions[k] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (r *stubAnnotationRepo) ListReactions(_ context.Context, key domain.ActivityKey) ([]domain.Reaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.failFor[key.String()]; err != nil {
		return nil, err
	}
	var out []domain.Reaction
	for _, re := range r.reactions[key.String()] {
		out = append(out, *re)
	}
	return out, nil
}

func (r *stubAnnotationRepo) CreateComment(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *comment
	k := comment.Key().String()
	r.comments[k] = append(r.comments[k], &cp)
	return nil
}

func (r *stubAnnotationRepo) GetComment(_ context.Context, key domain.ActivityKey, id uuid.UUID) (*domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.comments[key.String()] {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubAnnotationRepo) DeleteComment(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, list := range r.comments {
		for i, c := range list {
			if c.ID == id {
				r.comments[k] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (r *stubAnnotationRepo) ListComments(_ context.Context, key domain.ActivityKey) ([]domain.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Comment
	for _, c := range r.comments[key.String()] {
		out = append(out, *c)
	}
	return out, nil
}

// ── Stub profile store ────────────────────────────────────────────────────

type stubProfileStore struct {
	mu      sync.RWMutex
	stats   map[uuid.UUID]*domain.UserStats
	failFor map[uuid.UUID]error
}

func newStubProfileStore() *stubProfileStore {
	return &stubProfileStore{
		stats:   make(map[uuid.UUID]*domain.UserStats),
		failFor: make(map[uuid.UUID]error),
	}
}

func (s *stubProfileStore) set(userID uuid.UUID, stats domain.UserStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats.UserID = userID
	s.stats[userID] = &stats
}

func (s *stubProfileStore) GetStats(_ context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.failFor[userID]; err != nil {
		return nil, err
	}
	st, ok := s.stats[userID]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}
