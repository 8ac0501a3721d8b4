package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/strideclub/stride/internal/domain"
)

type ActivityRepo struct {
	pool *pgxpool.Pool
}

func NewActivityRepo(pool *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{pool: pool}
}

func (r *ActivityRepo) Create(ctx context.Context, activity *domain.Activity) error {
	query := `
		INSERT INTO activities (id, owner_id, type, date, time, duration_minutes, calories,
			distance_miles, photo_url, is_photo_private, emoji, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(ctx, query,
		activity.ID, activity.OwnerID, activity.Type, activity.Date, activity.Time,
		activity.DurationMinutes, activity.Calories, activity.DistanceMiles,
		activity.PhotoURL, activity.IsPhotoPrivate, activity.Emoji, activity.CreatedAt,
	)
	return err
}

func (r *ActivityRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Activity, error) {
	query := `
		SELECT id, owner_id, type, date, time, duration_minutes, calories,
			distance_miles, photo_url, is_photo_private, emoji, created_at
		FROM activities
		WHERE owner_id = $1
		ORDER BY date DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(
			&a.ID, &a.OwnerID, &a.Type, &a.Date, &a.Time, &a.DurationMinutes,
			&a.Calories, &a.DistanceMiles, &a.PhotoURL, &a.IsPhotoPrivate,
			&a.Emoji, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
