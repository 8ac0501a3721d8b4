package domain

import "github.com/google/uuid"

type Category string

const (
	CategoryMaster   Category = "master"
	CategoryStrength Category = "strength"
	CategoryCardio   Category = "cardio"
	CategoryRecovery Category = "recovery"
	CategoryCalories Category = "calories"
	CategorySteps    Category = "steps"
)

type TimeRange string

const (
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeYear  TimeRange = "year"
	RangeAll   TimeRange = "all"
)

type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendSame TrendDirection = "same"
)

type TrendInfo struct {
	Direction     TrendDirection `json:"direction"`
	PercentChange int            `json:"percent_change"`
}

// StatBuckets is one metric split by reporting window.
type StatBuckets struct {
	Week  int `json:"week"`
	Month int `json:"month"`
	Year  int `json:"year"`
	All   int `json:"all"`
}

func (b StatBuckets) For(r TimeRange) int {
	switch r {
	case RangeWeek:
		return b.Week
	case RangeMonth:
		return b.Month
	case RangeYear:
		return b.Year
	default:
		return b.All
	}
}

type Streaks struct {
	Master   int `json:"master"`
	Strength int `json:"strength"`
	Cardio   int `json:"cardio"`
	Recovery int `json:"recovery"`
}

// VolumeMetric is the per-activity-category workload: how many sessions and
// how many minutes, per bucket.
type VolumeMetric struct {
	Count   StatBuckets `json:"count"`
	Minutes StatBuckets `json:"minutes"`
}

// UserStats is the per-user stats document owned by the profile store.
// A user with no document ranks with the zero value.
type UserStats struct {
	UserID        uuid.UUID               `json:"user_id"`
	Streaks       Streaks                 `json:"streaks"`
	WeeksWon      int                     `json:"weeks_won"`
	TotalWorkouts int                     `json:"total_workouts"`
	Calories      StatBuckets             `json:"calories"`
	Steps         StatBuckets             `json:"steps"`
	Volume        map[string]VolumeMetric `json:"volume,omitempty"`
}

// LeaderboardRow is built fresh per leaderboard load and never persisted.
type LeaderboardRow struct {
	UserID        uuid.UUID `json:"user_id"`
	Username      string    `json:"username"`
	DisplayName   string    `json:"display_name"`
	AvatarURL     *string   `json:"avatar_url,omitempty"`
	Stats         UserStats `json:"stats"`
	IsCurrentUser bool      `json:"is_current_user"`
}

// Ranking is an ordered leaderboard for one (category, timeRange) selection.
// MaxValue is the rank-1 value, used to scale progress indicators.
type Ranking struct {
	Category  Category         `json:"category"`
	TimeRange TimeRange        `json:"time_range"`
	Rows      []LeaderboardRow `json:"rows"`
	MaxValue  int              `json:"max_value"`
}

// Podium returns the top three rows (fewer if the board is short).
func (r *Ranking) Podium() []LeaderboardRow {
	if len(r.Rows) <= 3 {
		return r.Rows
	}
	return r.Rows[:3]
}

// Rest returns everything below the podium.
func (r *Ranking) Rest() []LeaderboardRow {
	if len(r.Rows) <= 3 {
		return nil
	}
	return r.Rows[3:]
}
