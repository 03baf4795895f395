package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventhub/internal/domain"
)

type engagementRepository struct {
	DB *sql.DB
}

// NewEngagementRepository returns a domain.EngagementRepository implemented with Postgres.
func NewEngagementRepository(db *sql.DB) domain.EngagementRepository {
	return &engagementRepository{
		DB: db,
	}
}

func (r *engagementRepository) AddAttendee(ctx context.Context, eventID, userID string) (bool, error) {
	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO event_attendees (event_id, user_id) VALUES ($1, $2) ON CONFLICT (event_id, user_id) DO NOTHING`,
		eventID, userID)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

func (r *engagementRepository) RemoveAttendee(ctx context.Context, eventID, userID string) (bool, error) {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM event_attendees WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

func (r *engagementRepository) ListAttendees(ctx context.Context, eventID string) ([]*domain.User, error) {
	return queryUsers(ctx, r.DB, `SELECT `+userColumns+`
		FROM users u
		JOIN event_attendees a ON a.user_id = u.id
		WHERE a.event_id = $1
		ORDER BY a.created_at`, eventID)
}

// AddLike inserts the like and bumps likes_number in one transaction.
func (r *engagementRepository) AddLike(ctx context.Context, eventID, userID string) (bool, error) {
	return r.toggleLike(ctx, eventID, userID,
		`INSERT INTO event_likes (event_id, user_id) VALUES ($1, $2) ON CONFLICT (event_id, user_id) DO NOTHING`,
		`UPDATE events SET likes_number = likes_number + 1 WHERE id = $1`)
}

func (r *engagementRepository) RemoveLike(ctx context.Context, eventID, userID string) (bool, error) {
	return r.toggleLike(ctx, eventID, userID,
		`DELETE FROM event_likes WHERE event_id = $1 AND user_id = $2`,
		`UPDATE events SET likes_number = GREATEST(likes_number - 1, 0) WHERE id = $1`)
}

func (r *engagementRepository) toggleLike(ctx context.Context, eventID, userID, change, counter string) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, change, eventID, userID)
	if err != nil {
		return false, err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return false, nil
	}
	if _, err := tx.ExecContext(ctx, counter, eventID); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (r *engagementRepository) EventStats(ctx context.Context, eventID string) (*domain.EventStats, error) {
	query := `
		SELECT e.id, e.title,
			(SELECT COUNT(*) FROM event_attendees a WHERE a.event_id = e.id),
			(SELECT COUNT(*) FROM event_likes l WHERE l.event_id = e.id)
		FROM events e
		WHERE e.id = $1
	`
	s := &domain.EventStats{}
	err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&s.EventID, &s.EventTitle, &s.RSVPCount, &s.LikeCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *engagementRepository) GlobalStats(ctx context.Context) (*domain.GlobalStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM events),
			(SELECT COUNT(DISTINCT user_id) FROM event_attendees),
			(SELECT COUNT(*) FROM event_likes)
	`
	s := &domain.GlobalStats{}
	if err := r.DB.QueryRowContext(ctx, query).Scan(&s.TotalEvents, &s.TotalAttendees, &s.TotalLikes); err != nil {
		return nil, err
	}
	return s, nil
}
