package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/strideclub/stride/internal/domain"
	"github.com/strideclub/stride/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	feedLimit        = 50
	feedFanOutLimit  = 8
	annotationFanOut = 16
)

// FeedService merges per-friend activity streams into one time-ordered,
// capped feed annotated with reactions and comments.
//
// Failure policy: a failed fetch for one friend (or one activity's
// annotations) degrades that slice to empty and is logged; it never aborts
// the whole build. Callers always get a renderable, possibly partial, feed.
type FeedService struct {
	friendRepo  repository.FriendRepository
	activities  repository.ActivitySource
	annotations repository.AnnotationRepository
	logger      *zap.Logger

	// Per-user snapshot cache. A build installs its result only if no
	// newer build started for the same user in the meantime, so a
	// late-arriving fetch can never clobber fresher state.
	mu    sync.Mutex
	gens  map[uuid.UUID]uint64
	cache map[uuid.UUID]*domain.Feed
}

func NewFeedService(friendRepo repository.FriendRepository, activities repository.ActivitySource, annotations repository.AnnotationRepository, logger *zap.Logger) *FeedService {
	return &FeedService{
		friendRepo:  friendRepo,
		activities:  activities,
		annotations: annotations,
		logger:      logger,
		gens:        make(map[uuid.UUID]uint64),
		cache:       make(map[uuid.UUID]*domain.Feed),
	}
}

// BuildFeed assembles a fresh feed for userID and installs it in the cache
// unless superseded by a newer build.
func (s *FeedService) BuildFeed(ctx context.Context, userID uuid.UUID) (*domain.Feed, error) {
	gen := s.beginBuild(userID)

	friends, err := s.friendRepo.ListFriends(ctx, userID)
	if err != nil {
		feedBuildsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	entries := s.fetchFriendActivities(ctx, friends)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EffectiveTime().After(entries[j].EffectiveTime())
	})
	if len(entries) > feedLimit {
		entries = entries[:feedLimit]
	}

	reactions, comments := s.fetchAnnotations(ctx, entries)

	feed := &domain.Feed{
		Entries:   entries,
		Reactions: reactions,
		Comments:  comments,
		BuiltAt:   time.Now(),
	}

	if s.install(userID, gen, feed) {
		feedBuildsTotal.WithLabelValues("ok").Inc()
	} else {
		feedBuildsTotal.WithLabelValues("stale").Inc()
	}
	return feed, nil
}

// CachedFeed returns the last installed snapshot for userID, or nil.
func (s *FeedService) CachedFeed(userID uuid.UUID) *domain.Feed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache[userID]
}

// fetchFriendActivities fans out one fetch per friend and flattens the
// results in friend order, preserving fetch order within equal timestamps
// for the later stable sort.
func (s *FeedService) fetchFriendActivities(ctx context.Context, friends []domain.Friendship) []domain.FeedEntry {
	perFriend := make([][]domain.FeedEntry, len(friends))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(feedFanOutLimit)
	for i, friend := range friends {
		g.Go(func() error {
			acts, err := s.activities.ListByOwner(gctx, friend.OtherUserID)
			if err != nil {
				feedFriendFetchFailures.Inc()
				s.logger.Warn("feed: skipping friend after failed activity fetch",
					zap.String("friend_id", friend.OtherUserID.String()),
					zap.Error(err),
				)
				return nil
			}
			tagged := make([]domain.FeedEntry, 0, len(acts))
			for _, a := range acts {
				// The feed always shows someone else's activities.
				a.StripPrivatePhoto()
				tagged = append(tagged, domain.FeedEntry{
					Activity:          a,
					FriendUsername:    friend.OtherUsername,
					FriendDisplayName: friend.OtherDisplayName,
					FriendAvatarURL:   friend.OtherAvatarURL,
				})
			}
			perFriend[i] = tagged
			return nil
		})
	}
	g.Wait() //nolint:errcheck // goroutines swallow their own errors

	var entries []domain.FeedEntry
	for _, batch := range perFriend {
		entries = append(entries, batch...)
	}
	return entries
}

// fetchAnnotations loads reactions and comments for every retained entry
// concurrently, keyed by ActivityKey.String(). A failed fetch leaves that
// activity unannotated.
func (s *FeedService) fetchAnnotations(ctx context.Context, entries []domain.FeedEntry) (map[string][]domain.Reaction, map[string][]domain.Comment) {
	reactions := make(map[string][]domain.Reaction)
	comments := make(map[string][]domain.Comment)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(annotationFanOut)
	for _, entry := range entries {
		if entry.ID == uuid.Nil {
			continue
		}
		key := entry.Key()
		g.Go(func() error {
			res, rerr := s.annotations.ListReactions(gctx, key)
			cos, cerr := s.annotations.ListComments(gctx, key)
			if rerr != nil || cerr != nil {
				s.logger.Warn("feed: annotations unavailable for activity",
					zap.String("activity_key", key.String()),
					zap.NamedError("reactions", rerr),
					zap.NamedError("comments", cerr),
				)
			}
			mu.Lock()
			if rerr == nil && len(res) > 0 {
				reactions[key.String()] = res
			}
			if cerr == nil && len(cos) > 0 {
				comments[key.String()] = cos
			}
			mu.Unlock()
			return nil
		})
	}
	g.Wait() //nolint:errcheck

	return reactions, comments
}

func (s *FeedService) beginBuild(userID uuid.UUID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens[userID]++
	return s.gens[userID]
}

// install writes the snapshot only when gen is still the latest build for
// the user. Returns false for discarded stale results.
func (s *FeedService) install(userID uuid.UUID, gen uint64, feed *domain.Feed) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[userID] != gen {
		return false
	}
	s.cache[userID] = feed
	return true
}
