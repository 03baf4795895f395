package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"eventhub/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	categoryID, err := ensureCategory(ctx, tx, e.Category.Name)
	if err != nil {
		return fmt.Errorf("ensure category: %w", err)
	}
	e.Category.ID = categoryID

	query := `
		INSERT INTO events (title, description, start_date, end_date, location, city, country,
			organizer_id, category_id, is_online, link, status, capacity, price,
			registration_deadline, featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		e.Title, e.Description, e.StartDate.Format(domain.DateLayout), e.EndDate.Format(domain.DateLayout),
		e.Location, nullString(e.City), nullString(e.Country),
		e.OrganizerID, categoryID, e.IsOnline, e.Link, string(e.Status), nullInt(e.Capacity), nullDecimal(e.Price),
		nullTime(e.RegistrationDeadline), e.Featured, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		return err
	}

	tags, err := setEventTags(ctx, tx, e.ID, e.TagNames())
	if err != nil {
		return fmt.Errorf("set event tags: %w", err)
	}
	e.Tags = tags
	return tx.Commit()
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx, eventSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	set := func(column string, v any) {
		args = append(args, v)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Title != nil {
		set("title", *upd.Title)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if upd.StartDate != nil {
		set("start_date", upd.StartDate.Format(domain.DateLayout))
	}
	if upd.EndDate != nil {
		set("end_date", upd.EndDate.Format(domain.DateLayout))
	}
	if upd.Location != nil {
		set("location", *upd.Location)
	}
	if upd.City != nil {
		set("city", *upd.City)
	}
	if upd.Country != nil {
		set("country", *upd.Country)
	}
	if upd.CategoryName != nil {
		categoryID, err := ensureCategory(ctx, tx, *upd.CategoryName)
		if err != nil {
			return nil, fmt.Errorf("ensure category: %w", err)
		}
		set("category_id", categoryID)
	}
	if upd.IsOnline != nil {
		set("is_online", *upd.IsOnline)
	}
	if upd.Link != nil {
		set("link", *upd.Link)
	}
	if upd.Status != nil {
		set("status", string(*upd.Status))
	}
	if upd.Capacity != nil {
		set("capacity", *upd.Capacity)
	}
	if upd.Price != nil {
		set("price", upd.Price.String())
	}
	if upd.RegistrationDeadline != nil {
		set("registration_deadline", *upd.RegistrationDeadline)
	}
	if upd.Featured != nil {
		set("featured", *upd.Featured)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE events SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), len(args))
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}

	if upd.TagNames != nil {
		if _, err := setEventTags(ctx, tx, id, *upd.TagNames); err != nil {
			return nil, fmt.Errorf("set event tags: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Search(ctx context.Context, f domain.EventFilter) ([]*domain.Event, error) {
	where, args := buildEventWhere(f)
	return queryEvents(ctx, r.DB, eventSelect+where+` ORDER BY e.start_date ASC, e.id ASC`, args...)
}

func (r *eventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	return queryEvents(ctx, r.DB, eventSelect+`
		WHERE e.organizer_id = $1
		ORDER BY e.created_at DESC`, organizerID)
}

func (r *eventRepository) ListByAttendeeID(ctx context.Context, userID string) ([]*domain.Event, error) {
	return queryEvents(ctx, r.DB, eventSelect+`
		WHERE EXISTS (SELECT 1 FROM event_attendees a WHERE a.event_id = e.id AND a.user_id = $1)
		ORDER BY e.start_date ASC, e.id ASC`, userID)
}

func (r *eventRepository) ListLikedByUserID(ctx context.Context, userID string) ([]*domain.Event, error) {
	return queryEvents(ctx, r.DB, eventSelect+`
		WHERE EXISTS (SELECT 1 FROM event_likes l WHERE l.event_id = e.id AND l.user_id = $1)
		ORDER BY e.start_date ASC, e.id ASC`, userID)
}

// ensureCategory resolves a category by name, creating it if missing.
func ensureCategory(ctx context.Context, tx *sql.Tx, name string) (string, error) {
	var id string
	err := tx.QueryRowContext(ctx,
		`INSERT INTO categories (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`, name).Scan(&id)
	return id, err
}

// setEventTags replaces the event's tag links with the named tags, creating missing tags.
func setEventTags(ctx context.Context, tx *sql.Tx, eventID string, names []string) ([]domain.Tag, error) {
	if _, err := tx.ExecContext(ctx, `DELETE FROM event_tags WHERE event_id = $1`, eventID); err != nil {
		return nil, err
	}
	tags := make([]domain.Tag, 0, len(names))
	for _, name := range names {
		var tagID string
		err := tx.QueryRowContext(ctx,
			`INSERT INTO tags (name) VALUES ($1)
			 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`, name).Scan(&tagID)
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO event_tags (event_id, tag_id) VALUES ($1, $2) ON CONFLICT (event_id, tag_id) DO NOTHING`,
			eventID, tagID); err != nil {
			return nil, err
		}
		tags = append(tags, domain.Tag{ID: tagID, Name: name})
	}
	return tags, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
