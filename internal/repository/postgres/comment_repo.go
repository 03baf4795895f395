package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventhub/internal/domain"
)

type commentRepository struct {
	DB *sql.DB
}

func NewCommentRepository(db *sql.DB) domain.CommentRepository {
	return &commentRepository{DB: db}
}

func (r *commentRepository) Create(ctx context.Context, c *domain.Comment) error {
	query := `
		WITH inserted AS (
			INSERT INTO event_comments (event_id, user_id, content, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, user_id
		)
		SELECT inserted.id, u.username FROM inserted JOIN users u ON u.id = inserted.user_id
	`
	return r.DB.QueryRowContext(ctx, query, c.EventID, c.UserID, c.Content, c.CreatedAt).Scan(&c.ID, &c.Username)
}

func (r *commentRepository) GetByID(ctx context.Context, eventID, commentID string) (*domain.Comment, error) {
	query := `
		SELECT c.id, c.event_id, c.user_id, u.username, c.content, c.created_at
		FROM event_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.event_id = $1 AND c.id = $2
	`
	c := &domain.Comment{}
	err := r.DB.QueryRowContext(ctx, query, eventID, commentID).
		Scan(&c.ID, &c.EventID, &c.UserID, &c.Username, &c.Content, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *commentRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Comment, error) {
	query := `
		SELECT c.id, c.event_id, c.user_id, u.username, c.content, c.created_at
		FROM event_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.event_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		c := &domain.Comment{}
		if err := rows.Scan(&c.ID, &c.EventID, &c.UserID, &c.Username, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, commentID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM event_comments WHERE id = $1`, commentID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepository(db *sql.DB) domain.ReviewRepository {
	return &reviewRepository{DB: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `
		WITH inserted AS (
			INSERT INTO event_reviews (event_id, user_id, rating, content, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, user_id
		)
		SELECT inserted.id, u.username FROM inserted JOIN users u ON u.id = inserted.user_id
	`
	return r.DB.QueryRowContext(ctx, query, rv.EventID, rv.UserID, rv.Rating, nullString(rv.Content), rv.CreatedAt).
		Scan(&rv.ID, &rv.Username)
}

func (r *reviewRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Review, error) {
	query := `
		SELECT rv.id, rv.event_id, rv.user_id, u.username, rv.rating, rv.content, rv.created_at
		FROM event_reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.event_id = $1
		ORDER BY rv.created_at DESC, rv.id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		rv := &domain.Review{}
		var content sql.NullString
		if err := rows.Scan(&rv.ID, &rv.EventID, &rv.UserID, &rv.Username, &rv.Rating, &content, &rv.CreatedAt); err != nil {
			return nil, err
		}
		if content.Valid {
			rv.Content = &content.String
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}
