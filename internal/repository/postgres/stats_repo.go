package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/strideclub/stride/internal/domain"
)

// StatsRepo reads the per-user stats documents maintained by the stats
// rollup job. This core never writes them.
type StatsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

func (r *StatsRepo) GetStats(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	query := `
		SELECT user_id,
			streak_master, streak_strength, streak_cardio, streak_recovery,
			weeks_won, total_workouts,
			calories_week, calories_month, calories_year, calories_all,
			steps_week, steps_month, steps_year, steps_all,
			volume
		FROM user_stats
		WHERE user_id = $1`

	var (
		s         domain.UserStats
		volumeRaw []byte
	)
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&s.UserID,
		&s.Streaks.Master, &s.Streaks.Strength, &s.Streaks.Cardio, &s.Streaks.Recovery,
		&s.WeeksWon, &s.TotalWorkouts,
		&s.Calories.Week, &s.Calories.Month, &s.Calories.Year, &s.Calories.All,
		&s.Steps.Week, &s.Steps.Month, &s.Steps.Year, &s.Steps.All,
		&volumeRaw,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if len(volumeRaw) > 0 {
		if err := json.Unmarshal(volumeRaw, &s.Volume); err != nil {
			return nil, fmt.Errorf("decoding volume document: %w", err)
		}
	}
	return &s, nil
}
