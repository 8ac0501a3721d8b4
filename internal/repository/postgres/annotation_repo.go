package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/strideclub/stride/internal/domain"
)

type AnnotationRepo struct {
	pool *pgxpool.Pool
}

func NewAnnotationRepo(pool *pgxpool.Pool) *AnnotationRepo {
	return &AnnotationRepo{pool: pool}
}

func (r *AnnotationRepo) GetReaction(ctx context.Context, key domain.ActivityKey, reactorID uuid.UUID) (*domain.Reaction, error) {
	query := `
		SELECT id, owner_id, activity_id, reactor_id, type, created_at
		FROM reactions
		WHERE owner_id = $1 AND activity_id = $2 AND reactor_id = $3`
	var re domain.Reaction
	err := r.pool.QueryRow(ctx, query, key.OwnerID, key.ActivityID, reactorID).Scan(
		&re.ID, &re.OwnerID, &re.ActivityID, &re.ReactorID, &re.Type, &re.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &re, err
}

func (r *AnnotationRepo) CreateReaction(ctx context.Context, reaction *domain.Reaction) error {
	query := `
		INSERT INTO reactions (id, owner_id, activity_id, reactor_id, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		reaction.ID, reaction.OwnerID, reaction.ActivityID,
		reaction.ReactorID, reaction.Type, reaction.CreatedAt,
	)
	return err
}

func (r *AnnotationRepo) UpdateReactionType(ctx context.Context, id uuid.UUID, t domain.ReactionType) error {
	_, err := r.pool.Exec(ctx, `UPDATE reactions SET type = $2 WHERE id = $1`, id, t)
	return err
}

func (r *AnnotationRepo) DeleteReaction(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM reactions WHERE id = $1`, id)
	return err
}

func (r *AnnotationRepo) ListReactions(ctx context.Context, key domain.ActivityKey) ([]domain.Reaction, error) {
	query := `
		SELECT re.id, re.owner_id, re.activity_id, re.reactor_id, re.type, re.created_at,
			u.username, u.display_name
		FROM reactions re
		JOIN users u ON re.reactor_id = u.id
		WHERE re.owner_id = $1 AND re.activity_id = $2
		ORDER BY re.created_at ASC`

	rows, err := r.pool.Query(ctx, query, key.OwnerID, key.ActivityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reactions []domain.Reaction
	for rows.Next() {
		var re domain.Reaction
		if err := rows.Scan(
			&re.ID, &re.OwnerID, &re.ActivityID, &re.ReactorID, &re.Type, &re.CreatedAt,
			&re.ReactorUsername, &re.ReactorDisplayName,
		); err != nil {
			return nil, err
		}
		reactions = append(reactions, re)
	}
	return reactions, rows.Err()
}

func (r *AnnotationRepo) CreateComment(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (id, owner_id, activity_id, author_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		comment.ID, comment.OwnerID, comment.ActivityID,
		comment.AuthorID, comment.Text, comment.CreatedAt,
	)
	return err
}

func (r *AnnotationRepo) GetComment(ctx context.Context, key domain.ActivityKey, id uuid.UUID) (*domain.Comment, error) {
	query := `
		SELECT id, owner_id, activity_id, author_id, text, created_at
		FROM comments
		WHERE id = $1 AND owner_id = $2 AND activity_id = $3`
	var c domain.Comment
	err := r.pool.QueryRow(ctx, query, id, key.OwnerID, key.ActivityID).Scan(
		&c.ID, &c.OwnerID, &c.ActivityID, &c.AuthorID, &c.Text, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &c, err
}

func (r *AnnotationRepo) DeleteComment(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	return err
}

func (r *AnnotationRepo) ListComments(ctx context.Context, key domain.ActivityKey) ([]domain.Comment, error) {
	query := `
		SELECT c.id, c.owner_id, c.activity_id, c.author_id, c.text, c.created_at,
			u.username, u.display_name
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.owner_id = $1 AND c.activity_id = $2
		ORDER BY c.created_at ASC`

	rows, err := r.pool.Query(ctx, query, key.OwnerID, key.ActivityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(
			&c.ID, &c.OwnerID, &c.ActivityID, &c.AuthorID, &c.Text, &c.CreatedAt,
			&c.AuthorUsername, &c.AuthorDisplayName,
		); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
