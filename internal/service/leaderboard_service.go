package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/strideclub/stride/internal/domain"
	"github.com/strideclub/stride/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const statsFanOutLimit = 8

// LeaderboardService builds and ranks per-user stat rows for the current
// user and their friends. Rows are pure data composed fresh per load;
// nothing is cached here.
type LeaderboardService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
	profiles   repository.ProfileStore
	logger     *zap.Logger
}

func NewLeaderboardService(friendRepo repository.FriendRepository, userRepo repository.UserRepository, profiles repository.ProfileStore, logger *zap.Logger) *LeaderboardService {
	return &LeaderboardService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
		profiles:   profiles,
		logger:     logger,
	}
}

// ComposeRows builds one row per friend plus one for the current user
// (first, flagged IsCurrentUser). Stats are fetched concurrently; a user
// whose stats document is absent or unfetchable ranks with zero values
// rather than failing the board.
func (s *LeaderboardService) ComposeRows(ctx context.Context, userID uuid.UUID) ([]domain.LeaderboardRow, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading current user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("current user %s does not exist", userID)
	}

	friends, err := s.friendRepo.ListFriends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing friends: %w", err)
	}

	rows := make([]domain.LeaderboardRow, len(friends)+1)
	rows[0] = domain.LeaderboardRow{
		UserID:        user.ID,
		Username:      user.Username,
		DisplayName:   user.DisplayName,
		AvatarURL:     user.AvatarURL,
		IsCurrentUser: true,
	}
	for i, f := range friends {
		rows[i+1] = domain.LeaderboardRow{
			UserID:      f.OtherUserID,
			Username:    f.OtherUsername,
			DisplayName: f.OtherDisplayName,
			AvatarURL:   f.OtherAvatarURL,
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(statsFanOutLimit)
	for i := range rows {
		g.Go(func() error {
			stats, err := s.profiles.GetStats(gctx, rows[i].UserID)
			if err != nil {
				s.logger.Warn("leaderboard: stats unavailable, using zero values",
					zap.String("user_id", rows[i].UserID.String()),
					zap.Error(err),
				)
				stats = nil
			}
			if stats == nil {
				stats = &domain.UserStats{UserID: rows[i].UserID}
			}
			rows[i].Stats = *stats
			return nil
		})
	}
	g.Wait() //nolint:errcheck // goroutines swallow their own errors

	leaderboardBuildsTotal.Inc()
	return rows, nil
}

// Rank orders rows descending by the selected category/time-range value.
// The sort is stable: ties keep their composition order (current user,
// then friends in list order).
func (s *LeaderboardService) Rank(rows []domain.LeaderboardRow, category domain.Category, timeRange domain.TimeRange) domain.Ranking {
	sorted := make([]domain.LeaderboardRow, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		return rankValue(sorted[i], category, timeRange) > rankValue(sorted[j], category, timeRange)
	})

	maxValue := 0
	if len(sorted) > 0 {
		maxValue = rankValue(sorted[0], category, timeRange)
	}

	return domain.Ranking{
		Category:  category,
		TimeRange: timeRange,
		Rows:      sorted,
		MaxValue:  maxValue,
	}
}

// Value returns the score the given row ranks by under the selection.
func (s *LeaderboardService) Value(row domain.LeaderboardRow, category domain.Category, timeRange domain.TimeRange) int {
	return rankValue(row, category, timeRange)
}

func rankValue(row domain.LeaderboardRow, category domain.Category, timeRange domain.TimeRange) int {
	switch category {
	case domain.CategoryStrength:
		return row.Stats.Streaks.Strength
	case domain.CategoryCardio:
		return row.Stats.Streaks.Cardio
	case domain.CategoryRecovery:
		return row.Stats.Streaks.Recovery
	case domain.CategoryCalories:
		return row.Stats.Calories.For(timeRange)
	case domain.CategorySteps:
		return row.Stats.Steps.For(timeRange)
	default:
		return row.Stats.Streaks.Master
	}
}

// Trend computes the direction indicator for one row.
//
// Calories and steps compare the current bucket against an expected
// prior-period value scaled down from the next broader bucket. Streak
// categories have no historical samples, so the direction is a documented
// display heuristic: a deterministic rolling hash of uid+category+range.
func (s *LeaderboardService) Trend(row domain.LeaderboardRow, category domain.Category, timeRange domain.TimeRange) domain.TrendInfo {
	switch category {
	case domain.CategoryCalories:
		return statTrend(row.Stats.Calories, timeRange)
	case domain.CategorySteps:
		return statTrend(row.Stats.Steps, timeRange)
	default:
		return heuristicTrend(row.UserID.String() + string(category) + string(timeRange))
	}
}

func statTrend(buckets domain.StatBuckets, timeRange domain.TimeRange) domain.TrendInfo {
	current := buckets.For(timeRange)

	var expected int
	switch timeRange {
	case domain.RangeWeek:
		expected = buckets.Month / 4
	case domain.RangeMonth:
		expected = buckets.Year / 12
	default:
		expected = current
	}

	delta := current - expected
	percent := 0
	if expected != 0 {
		percent = int(math.Round(100 * float64(delta) / float64(expected)))
	}

	return domain.TrendInfo{Direction: deltaDirection(delta), PercentChange: percent}
}

func deltaDirection(delta int) domain.TrendDirection {
	switch {
	case delta > 0:
		return domain.TrendUp
	case delta < 0:
		return domain.TrendDown
	default:
		return domain.TrendSame
	}
}

// heuristicTrend maps a classic multiplicative rolling hash (31x, 32-bit
// wraparound) of the seed string onto a direction: normalized fraction
// above 0.6 is up, below 0.3 is down, otherwise same. Reproducible per
// (user, category, range) tuple; it is a display heuristic, not a
// measurement.
func heuristicTrend(seed string) domain.TrendInfo {
	var h uint32
	for _, b := range []byte(seed) {
		h = h*31 + uint32(b)
	}
	frac := float64(h) / float64(1<<32)

	direction := domain.TrendSame
	if frac > 0.6 {
		direction = domain.TrendUp
	} else if frac < 0.3 {
		direction = domain.TrendDown
	}
	return domain.TrendInfo{Direction: direction}
}
