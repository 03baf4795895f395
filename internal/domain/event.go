package domain

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EventStatus is the lifecycle status of an event.
type EventStatus string

const (
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusCanceled  EventStatus = "canceled"
)

// Valid reports whether s is one of the known statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusScheduled, EventStatusOngoing, EventStatusCanceled:
		return true
	}
	return false
}

// DateLayout is the wire and storage layout of event start and end dates.
const DateLayout = "2006-01-02"

// Event represents a user-organized event.
// swagger:model Event
type Event struct {
	ID                   string           `json:"id"`
	Title                string           `json:"title"`
	Description          string           `json:"description"`
	StartDate            time.Time        `json:"start_date"`
	EndDate              time.Time        `json:"end_date"`
	Location             string           `json:"location"`
	City                 *string          `json:"city,omitempty"`
	Country              *string          `json:"country,omitempty"`
	OrganizerID          string           `json:"organizer_id"`
	Category             Category         `json:"category"`
	Tags                 []Tag            `json:"tags"`
	IsOnline             bool             `json:"is_online"`
	Link                 string           `json:"link"`
	Status               EventStatus      `json:"status"`
	Capacity             *int             `json:"capacity,omitempty"`
	Price                *decimal.Decimal `json:"price,omitempty"`
	RegistrationDeadline *time.Time       `json:"registration_deadline,omitempty"`
	Featured             bool             `json:"featured"`
	LikesNumber          int              `json:"likes_number"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// NewEvent returns a scheduled Event owned by organizerID. ID is typically set by the repository on create.
func NewEvent(title, description, location, organizerID string, startDate, endDate time.Time, categoryName string, tagNames []string) *Event {
	tags := make([]Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tags = append(tags, Tag{Name: name})
	}
	return &Event{
		Title:       title,
		Description: description,
		Location:    location,
		OrganizerID: organizerID,
		StartDate:   startDate,
		EndDate:     endDate,
		Category:    Category{Name: categoryName},
		Tags:        tags,
		Status:      EventStatusScheduled,
	}
}

// TagNames returns the names of the event's tags in order.
func (e *Event) TagNames() []string {
	names := make([]string, 0, len(e.Tags))
	for _, t := range e.Tags {
		names = append(names, t.Name)
	}
	return names
}

// EventUpdate carries a partial update. Nil fields are left unchanged.
type EventUpdate struct {
	Title                *string
	Description          *string
	StartDate            *time.Time
	EndDate              *time.Time
	Location             *string
	City                 *string
	Country              *string
	CategoryName         *string
	TagNames             *[]string
	IsOnline             *bool
	Link                 *string
	Status               *EventStatus
	Capacity             *int
	Price                *decimal.Decimal
	RegistrationDeadline *time.Time
	Featured             *bool
}

// EventFilter is a store-agnostic description of which events match a search.
// Every non-zero field narrows the result; the zero value matches all events.
type EventFilter struct {
	// Query is matched case-insensitively as a substring of title or description.
	Query string
	// Date is matched exactly against the start date.
	Date *time.Time
	// Category is matched case-insensitively against the whole category name.
	Category string
	// Location is matched case-insensitively as a substring of the location.
	Location string
	// Tags matches events carrying at least one of the named tags.
	Tags []string
}

// IsEmpty reports whether the filter matches every event.
func (f EventFilter) IsEmpty() bool {
	return f.Query == "" && f.Date == nil && f.Category == "" && f.Location == "" && len(f.Tags) == 0
}

// Matches evaluates the filter against a single event in memory.
func (f EventFilter) Matches(e *Event) bool {
	if e == nil {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(e.Title), q) && !strings.Contains(strings.ToLower(e.Description), q) {
			return false
		}
	}
	if f.Date != nil && e.StartDate.Format(DateLayout) != f.Date.Format(DateLayout) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(e.Category.Name, f.Category) {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(e.Location), strings.ToLower(f.Location)) {
		return false
	}
	if len(f.Tags) > 0 {
		found := false
		for _, t := range e.Tags {
			for _, want := range f.Tags {
				if t.Name == want {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// SearchParams maps list query parameter names (query, date, category, location, tags) to raw values.
type SearchParams map[string]string

// EventRepository defines the interface for event storage
type EventRepository interface {
	// Create stores the event, resolving its category and tags by name (creating them if missing).
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
	// Search returns the events matching the filter ordered by start date.
	Search(ctx context.Context, filter EventFilter) ([]*Event, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Event, error)
	ListByAttendeeID(ctx context.Context, userID string) ([]*Event, error)
	ListLikedByUserID(ctx context.Context, userID string) ([]*Event, error)
}

// EventSearcher runs a parameterized event search, possibly served from a result cache.
type EventSearcher interface {
	Search(ctx context.Context, params SearchParams) ([]*Event, error)
}

// EventService defines the business logic for events.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	UpdateEvent(ctx context.Context, eventID, organizerID string, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, organizerID string) error
	SearchEvents(ctx context.Context, params SearchParams) ([]*Event, error)
	ListMyEvents(ctx context.Context, organizerID string) ([]*Event, error)
}
