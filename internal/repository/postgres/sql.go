package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"eventhub/internal/domain"
)

// eventSelect reads events with their category and tags in one round trip.
const eventSelect = `
	SELECT e.id, e.title, e.description, e.start_date, e.end_date, e.location, e.city, e.country,
		e.organizer_id, c.id, c.name, e.is_online, e.link, e.status, e.capacity, e.price,
		e.registration_deadline, e.featured, e.likes_number, e.created_at, e.updated_at,
		COALESCE((
			SELECT json_agg(json_build_object('id', t.id, 'name', t.name) ORDER BY t.name)
			FROM event_tags et JOIN tags t ON t.id = et.tag_id
			WHERE et.event_id = e.id
		), '[]') AS tags
	FROM events e
	JOIN categories c ON c.id = e.category_id`

// eventColumns lists the result columns of eventSelect, in order. Used by tests.
var eventColumns = []string{
	"id", "title", "description", "start_date", "end_date", "location", "city", "country",
	"organizer_id", "category_id", "category_name", "is_online", "link", "status", "capacity", "price",
	"registration_deadline", "featured", "likes_number", "created_at", "updated_at", "tags",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var (
		city, country sql.NullString
		capacity      sql.NullInt64
		price         decimal.NullDecimal
		deadline      sql.NullTime
		status        string
		tagsJSON      []byte
	)
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.Location, &city, &country,
		&e.OrganizerID, &e.Category.ID, &e.Category.Name, &e.IsOnline, &e.Link, &status, &capacity, &price,
		&deadline, &e.Featured, &e.LikesNumber, &e.CreatedAt, &e.UpdatedAt, &tagsJSON,
	)
	if err != nil {
		return nil, err
	}
	e.Status = domain.EventStatus(status)
	if city.Valid {
		e.City = &city.String
	}
	if country.Valid {
		e.Country = &country.String
	}
	if capacity.Valid {
		n := int(capacity.Int64)
		e.Capacity = &n
	}
	if price.Valid {
		e.Price = &price.Decimal
	}
	if deadline.Valid {
		e.RegistrationDeadline = &deadline.Time
	}
	e.Tags = []domain.Tag{}
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &e.Tags); err != nil {
			return nil, fmt.Errorf("decode event tags: %w", err)
		}
	}
	return e, nil
}

func queryEvents(ctx context.Context, db *sql.DB, query string, args ...any) ([]*domain.Event, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// buildEventWhere translates a filter into a WHERE clause (empty for match-all)
// with positional arguments starting at $1.
func buildEventWhere(f domain.EventFilter) (string, []any) {
	var clauses []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Query != "" {
		p := next(containsPattern(f.Query))
		clauses = append(clauses, fmt.Sprintf("(e.title ILIKE %s OR e.description ILIKE %s)", p, p))
	}
	if f.Date != nil {
		clauses = append(clauses, "e.start_date = "+next(f.Date.Format(domain.DateLayout)))
	}
	if f.Category != "" {
		clauses = append(clauses, "LOWER(c.name) = LOWER("+next(f.Category)+")")
	}
	if f.Location != "" {
		clauses = append(clauses, "e.location ILIKE "+next(containsPattern(f.Location)))
	}
	if len(f.Tags) > 0 {
		clauses = append(clauses, `EXISTS (
			SELECT 1 FROM event_tags et JOIN tags t ON t.id = et.tag_id
			WHERE et.event_id = e.id AND t.name = ANY(`+next(pq.Array(f.Tags))+`))`)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns an ILIKE pattern matching s literally anywhere in the value.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func isUniqueViolation(err error) bool {
	var perr *pq.Error
	return errors.As(err, &perr) && perr.Code == "23505"
}
