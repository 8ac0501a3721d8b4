package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/strideclub/stride/internal/domain"
)

type FriendRepo struct {
	pool *pgxpool.Pool
}

func NewFriendRepo(pool *pgxpool.Pool) *FriendRepo {
	return &FriendRepo{pool: pool}
}

func (r *FriendRepo) CreateRequest(ctx context.Context, req *domain.FriendRequest) error {
	query := `
		INSERT INTO friend_requests (id, sender_id, receiver_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, req.ID, req.SenderID, req.ReceiverID, req.Status, req.CreatedAt)
	return err
}

func (r *FriendRepo) GetRequestByID(ctx context.Context, id uuid.UUID) (*domain.FriendRequest, error) {
	query := `
		SELECT id, sender_id, receiver_id, status, created_at
		FROM friend_requests
		WHERE id = $1`
	var req domain.FriendRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.SenderID, &req.ReceiverID, &req.Status, &req.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &req, err
}

func (r *FriendRepo) GetRequestByUsers(ctx context.Context, senderID, receiverID uuid.UUID) (*domain.FriendRequest, error) {
	query := `
		SELECT id, sender_id, receiver_id, status, created_at
		FROM friend_requests
		WHERE sender_id = $1 AND receiver_id = $2`
	var req domain.FriendRequest
	err := r.pool.QueryRow(ctx, query, senderID, receiverID).Scan(
		&req.ID, &req.SenderID, &req.ReceiverID, &req.Status, &req.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &req, err
}

func (r *FriendRepo) ListIncomingRequests(ctx context.Context, userID uuid.UUID) ([]domain.FriendRequest, error) {
	query := `
		SELECT r.id, r.sender_id, r.receiver_id, r.status, r.created_at,
			u.username, u.display_name
		FROM friend_requests r
		JOIN users u ON r.sender_id = u.id
		WHERE r.receiver_id = $1 AND r.status = 'pending'
		ORDER BY r.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.FriendRequest
	for rows.Next() {
		var req domain.FriendRequest
		if err := rows.Scan(
			&req.ID, &req.SenderID, &req.ReceiverID, &req.Status, &req.CreatedAt,
			&req.SenderUsername, &req.SenderDisplayName,
		); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *FriendRepo) ListOutgoingRequests(ctx context.Context, userID uuid.UUID) ([]domain.FriendRequest, error) {
	query := `
		SELECT r.id, r.sender_id, r.receiver_id, r.status, r.created_at,
			u.username, u.display_name
		FROM friend_requests r
		JOIN users u ON r.receiver_id = u.id
		WHERE r.sender_id = $1 AND r.status = 'pending'
		ORDER BY r.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.FriendRequest
	for rows.Next() {
		var req domain.FriendRequest
		if err := rows.Scan(
			&req.ID, &req.SenderID, &req.ReceiverID, &req.Status, &req.CreatedAt,
			&req.ReceiverUsername, &req.ReceiverDisplayName,
		); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func (r *FriendRepo) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM friend_requests WHERE id = $1`, id)
	return err
}

// ConfirmRequest promotes a pending request to a friendship atomically.
// The delete and insert either both land or neither does; a request that
// was already accepted or declined elsewhere reports ok=false.
func (r *FriendRepo) ConfirmRequest(ctx context.Context, requestID uuid.UUID, friendship *domain.Friendship) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM friend_requests WHERE id = $1`, requestID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO friendships (id, user1_id, user2_id, created_at)
		VALUES ($1, $2, $3, $4)`,
		friendship.ID, friendship.User1ID, friendship.User2ID, friendship.CreatedAt,
	)
	if err != nil {
		return false, err
	}

	return true, tx.Commit(ctx)
}

func (r *FriendRepo) ListFriends(ctx context.Context, userID uuid.UUID) ([]domain.Friendship, error) {
	query := `
		SELECT f.id, f.user1_id, f.user2_id, f.created_at,
			CASE WHEN f.user1_id = $1 THEN f.user2_id ELSE f.user1_id END AS other_user_id,
			CASE WHEN f.user1_id = $1 THEN u2.username ELSE u1.username END AS other_username,
			CASE WHEN f.user1_id = $1 THEN u2.display_name ELSE u1.display_name END AS other_display_name,
			CASE WHEN f.user1_id = $1 THEN u2.avatar_url ELSE u1.avatar_url END AS other_avatar_url
		FROM friendships f
		JOIN users u1 ON f.user1_id = u1.id
		JOIN users u2 ON f.user2_id = u2.id
		WHERE f.user1_id = $1 OR f.user2_id = $1
		ORDER BY other_display_name ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var friends []domain.Friendship
	for rows.Next() {
		var f domain.Friendship
		if err := rows.Scan(
			&f.ID, &f.User1ID, &f.User2ID, &f.CreatedAt,
			&f.OtherUserID, &f.OtherUsername, &f.OtherDisplayName, &f.OtherAvatarURL,
		); err != nil {
			return nil, err
		}
		friends = append(friends, f)
	}
	return friends, rows.Err()
}

func (r *FriendRepo) DeleteFriendship(ctx context.Context, user1ID, user2ID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM friendships WHERE user1_id = $1 AND user2_id = $2`, user1ID, user2ID)
	return err
}

func (r *FriendRepo) AreFriends(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	u1, u2 := domain.CanonicalPair(userA, userB)
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM friendships WHERE user1_id = $1 AND user2_id = $2)`,
		u1, u2,
	).Scan(&exists)
	return exists, err
}
