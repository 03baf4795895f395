package controllers

import (
	"time"

	"github.com/shopspring/decimal"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

// TagResponse is the API representation of a tag.
type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryResponse is the API representation of a category.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EventResponse is the API representation of an event. Dates are YYYY-MM-DD.
type EventResponse struct {
	ID                   string           `json:"id"`
	Title                string           `json:"title"`
	Description          string           `json:"description"`
	StartDate            string           `json:"start_date"`
	EndDate              string           `json:"end_date"`
	Location             string           `json:"location"`
	City                 *string          `json:"city"`
	Country              *string          `json:"country"`
	OrganizerID          string           `json:"organizer_id"`
	Category             CategoryResponse `json:"category"`
	Tags                 []TagResponse    `json:"tags"`
	IsOnline             bool             `json:"is_online"`
	Link                 string           `json:"link"`
	Status               string           `json:"status"`
	Capacity             *int             `json:"capacity"`
	Price                *decimal.Decimal `json:"price" swaggertype:"string"`
	RegistrationDeadline *time.Time       `json:"registration_deadline"`
	Featured             bool             `json:"featured"`
	LikesNumber          int              `json:"likes_number"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// UserResponse is the API representation of a user. Credentials are never included.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Bio       *string   `json:"bio"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentResponse is the API representation of a comment.
type CommentResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewResponse is the API representation of a review.
type ReviewResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Content   *string   `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// EventListResponse is one page of events.
type EventListResponse struct {
	Events     []EventResponse        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

func toTagResponse(t domain.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

func toCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func toEventResponse(e *domain.Event) EventResponse {
	tags := make([]TagResponse, 0, len(e.Tags))
	for _, t := range e.Tags {
		tags = append(tags, toTagResponse(t))
	}
	return EventResponse{
		ID:                   e.ID,
		Title:                e.Title,
		Description:          e.Description,
		StartDate:            e.StartDate.Format(domain.DateLayout),
		EndDate:              e.EndDate.Format(domain.DateLayout),
		Location:             e.Location,
		City:                 e.City,
		Country:              e.Country,
		OrganizerID:          e.OrganizerID,
		Category:             toCategoryResponse(e.Category),
		Tags:                 tags,
		IsOnline:             e.IsOnline,
		Link:                 e.Link,
		Status:               string(e.Status),
		Capacity:             e.Capacity,
		Price:                e.Price,
		RegistrationDeadline: e.RegistrationDeadline,
		Featured:             e.Featured,
		LikesNumber:          e.LikesNumber,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

func toEventResponses(events []*domain.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Bio:       u.Bio,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		EventID:   c.EventID,
		UserID:    c.UserID,
		Username:  c.Username,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func toReviewResponse(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		EventID:   r.EventID,
		UserID:    r.UserID,
		Username:  r.Username,
		Rating:    r.Rating,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
	}
}
