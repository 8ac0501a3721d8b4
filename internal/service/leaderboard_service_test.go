package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/strideclub/stride/internal/domain"
	"github.com/strideclub/stride/internal/service"
	"go.uber.org/zap"
)

type boardFixture struct {
	svc      *service.LeaderboardService
	users    *stubUserRepo
	friends  *stubFriendRepo
	profiles *stubProfileStore
	viewer   *domain.User
}

func newBoardFixture() *boardFixture {
	users := newStubUserRepo()
	friends := newStubFriendRepo(users)
	profiles := newStubProfileStore()
	return &boardFixture{
		svc:      service.NewLeaderboardService(friends, users, profiles, zap.NewNop()),
		users:    users,
		friends:  friends,
		profiles: profiles,
		viewer:   users.add("viewer"),
	}
}

func (f *boardFixture) addFriend(username string, stats domain.UserStats) *domain.User {
	u := f.users.add(username)
	f.friends.befriend(f.viewer.ID, u.ID)
	f.profiles.set(u.ID, stats)
	return u
}

func caloriesWeek(n int) domain.UserStats {
	return domain.UserStats{Calories: domain.StatBuckets{Week: n}}
}

func TestComposeRows_CurrentUserFirstAndFlagged(t *testing.T) {
	fx := newBoardFixture()
	fx.profiles.set(fx.viewer.ID, caloriesWeek(100))
	fx.addFriend("ana", caloriesWeek(200))
	fx.addFriend("ben", caloriesWeek(300))

	rows, err := fx.svc.ComposeRows(context.Background(), fx.viewer.ID)
	if err != nil {
		t.Fatalf("ComposeRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0].UserID != fx.viewer.ID || !rows[0].IsCurrentUser {
		t.Errorf("rows[0] = %+v, want the flagged current user", rows[0])
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].IsCurrentUser {
			t.Errorf("rows[%d] flagged as current user", i)
		}
	}
	if rows[0].Stats.Calories.Week != 100 {
		t.Errorf("viewer calories = %d, want 100", rows[0].Stats.Calories.Week)
	}
}

func TestComposeRows_MissingOrFailingStatsRankZero(t *testing.T) {
	fx := newBoardFixture()
	fx.profiles.set(fx.viewer.ID, caloriesWeek(100))
	ghost := fx.users.add("ghost") // no stats document
	fx.friends.befriend(fx.viewer.ID, ghost.ID)
	broken := fx.addFriend("broken", caloriesWeek(999))
	fx.profiles.failFor[broken.ID] = errors.New("stats store down")

	rows, err := fx.svc.ComposeRows(context.Background(), fx.viewer.ID)
	if err != nil {
		t.Fatalf("ComposeRows: %v", err)
	}
	for _, row := range rows {
		if row.UserID == ghost.ID || row.UserID == broken.ID {
			if row.Stats.Calories.Week != 0 {
				t.Errorf("user %s calories = %d, want zero fallback", row.Username, row.Stats.Calories.Week)
			}
		}
	}
}

func TestRank_CaloriesWeekDescending(t *testing.T) {
	svc := service.NewLeaderboardService(nil, nil, nil, zap.NewNop())
	rows := []domain.LeaderboardRow{
		{UserID: uuid.New(), Username: "low", Stats: caloriesWeek(500)},
		{UserID: uuid.New(), Username: "high", Stats: caloriesWeek(2000)},
		{UserID: uuid.New(), Username: "mid", Stats: caloriesWeek(1000)},
	}

	ranking := svc.Rank(rows, domain.CategoryCalories, domain.RangeWeek)

	wantOrder := []string{"high", "mid", "low"}
	for i, want := range wantOrder {
		if ranking.Rows[i].Username != want {
			t.Errorf("rank %d = %q, want %q", i+1, ranking.Rows[i].Username, want)
		}
	}
	if ranking.MaxValue != 2000 {
		t.Errorf("MaxValue = %d, want 2000", ranking.MaxValue)
	}
	// Input order untouched.
	if rows[0].Username != "low" {
		t.Error("Rank mutated its input slice")
	}
}

func TestRank_StableOnTies(t *testing.T) {
	svc := service.NewLeaderboardService(nil, nil, nil, zap.NewNop())
	rows := []domain.LeaderboardRow{
		{Username: "first", Stats: caloriesWeek(700)},
		{Username: "second", Stats: caloriesWeek(700)},
		{Username: "third", Stats: caloriesWeek(700)},
	}

	ranking := svc.Rank(rows, domain.CategoryCalories, domain.RangeWeek)
	for i, want := range []string{"first", "second", "third"} {
		if ranking.Rows[i].Username != want {
			t.Errorf("tied rank %d = %q, want composition order %q", i+1, ranking.Rows[i].Username, want)
		}
	}
}

func TestRank_StreakCategoriesAndDefault(t *testing.T) {
	svc := service.NewLeaderboardService(nil, nil, nil, zap.NewNop())
	row := domain.LeaderboardRow{Stats: domain.UserStats{
		Streaks: domain.Streaks{Master: 10, Strength: 4, Cardio: 7, Recovery: 2},
		Steps:   domain.StatBuckets{Month: 80000},
	}}

	cases := []struct {
		category  domain.Category
		timeRange domain.TimeRange
		want      int
	}{
		{domain.CategoryStrength, domain.RangeWeek, 4},
		{domain.CategoryCardio, domain.RangeAll, 7},
		{domain.CategoryRecovery, domain.RangeMonth, 2},
		{domain.CategorySteps, domain.RangeMonth, 80000},
		{domain.CategoryMaster, domain.RangeWeek, 10},
		{domain.Category("bogus"), domain.RangeWeek, 10}, // unknown falls back to master
	}
	for _, tc := range cases {
		if got := svc.Value(row, tc.category, tc.timeRange); got != tc.want {
			t.Errorf("Value(%q, %q) = %d, want %d", tc.category, tc.timeRange, got, tc.want)
		}
	}
}

func TestRanking_PodiumPartition(t *testing.T) {
	svc := service.NewLeaderboardService(nil, nil, nil, zap.NewNop())
	var rows []domain.LeaderboardRow
	for i := 5; i >= 1; i-- {
		rows = append(rows, domain.LeaderboardRow{Stats: caloriesWeek(i * 100)})
	}

	ranking := svc.Rank(rows, domain.CategoryCalories, domain.RangeWeek)
	if podium := ranking.Podium(); len(podium) != 3 || podium[0].Stats.Calories.Week != 500 {
		t.Errorf("Podium() = %d rows topped by %d, want 3 rows topped by 500",
			len(podium), podium[0].Stats.Calories.Week)
	}
	if rest := ranking.Rest(); len(rest) != 2 {
		t.Errorf("Rest() = %d rows, want 2", len(rest))
	}

	short := svc.Rank(rows[:2], domain.CategoryCalories, domain.RangeWeek)
	if podium := short.Podium(); len(podium) != 2 {
		t.Errorf("short board Podium() = %d rows, want all 2", len(podium))
	}
	if rest := short.Rest(); rest != nil {
		t.Errorf("short board Rest() = %v, want nil", rest)
	}
}

func TestTrend_StatComparesAgainstScaledExpectation(t *testing.T) {
	svc := service.NewLeaderboardService(nil, nil, nil, zap.NewNop())

	// Week expectation is month/4: 800/4 = 200 expected, 300 actual, +50%.
	up := domain.LeaderboardRow{Stats: domain.UserStats{
		Calories: domain.StatBuckets{Week: 300, Month: 800},
	}}
	trend := svc.Trend(up, domain.CategoryCalories, domain.RangeWeek)
	if trend.Direction != domain.TrendUp || trend.PercentChange != 50 {
		t.Errorf("week trend = %+v, want up +50", trend)
	}

	// Month expectation is year/12: 1200/12 = 100 expected, 80 actual, -20%.
	down := domain.LeaderboardRow{Stats: domain.UserStats{
		Steps: domain.StatBuckets{Month: 80, Year: 1200},
	}}
	trend = svc.Trend(down, domain.CategorySteps, domain.RangeMonth)
	if trend.Direction != domain.TrendDown || trend.PercentChange != -20 {
		t.Errorf("month trend = %+v, want down -20", trend)
	}

	// Zero expectation reports no percentage.
	flat := domain.LeaderboardRow{Stats: domain.UserStats{}}
	trend = svc.Trend(flat, domain.CategoryCalories, domain.RangeWeek)
	if trend.Direction != domain.TrendSame || trend.PercentChange != 0 {
		t.Errorf("zero-stats trend = %+v, want same 0", trend)
	}
}

func TestTrend_HeuristicIsDeterministic(t *testing.T) {
	svc := service.NewLeaderboardService(nil, nil, nil, zap.NewNop())
	row := domain.LeaderboardRow{UserID: uuid.New(), Stats: domain.UserStats{
		Streaks: domain.Streaks{Strength: 5},
	}}

	first := svc.Trend(row, domain.CategoryStrength, domain.RangeWeek)
	second := svc.Trend(row, domain.CategoryStrength, domain.RangeWeek)
	if first != second {
		t.Errorf("heuristic trend not stable: %+v then %+v", first, second)
	}
	if first.PercentChange != 0 {
		t.Errorf("streak trend PercentChange = %d, want 0", first.PercentChange)
	}
}
