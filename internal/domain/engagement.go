package domain

import (
	"context"
	"time"
)

// Comment is a user comment on an event.
// swagger:model Comment
type Comment struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Review is a rated review of an event.
// swagger:model Review
type Review struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Content   *string   `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Review rating bounds (inclusive).
const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// EventStats holds per-event engagement counters.
// swagger:model EventStats
type EventStats struct {
	EventID    string `json:"event_id"`
	EventTitle string `json:"event_title"`
	RSVPCount  int    `json:"rsvp_count"`
	LikeCount  int    `json:"like_count"`
}

// GlobalStats holds platform-wide counters.
// swagger:model GlobalStats
type GlobalStats struct {
	TotalEvents    int `json:"total_events"`
	TotalAttendees int `json:"total_attendees"`
	TotalLikes     int `json:"total_likes"`
}

// EngagementRepository stores RSVPs and likes and computes statistics.
type EngagementRepository interface {
	// AddAttendee returns false if the user had already RSVP'd.
	AddAttendee(ctx context.Context, eventID, userID string) (bool, error)
	// RemoveAttendee returns false if the user had not RSVP'd.
	RemoveAttendee(ctx context.Context, eventID, userID string) (bool, error)
	ListAttendees(ctx context.Context, eventID string) ([]*User, error)
	// AddLike records the like and increments the event's likes_number. Returns false if already liked.
	AddLike(ctx context.Context, eventID, userID string) (bool, error)
	// RemoveLike deletes the like and decrements likes_number. Returns false if not liked.
	RemoveLike(ctx context.Context, eventID, userID string) (bool, error)
	EventStats(ctx context.Context, eventID string) (*EventStats, error)
	GlobalStats(ctx context.Context) (*GlobalStats, error)
}

// CommentRepository stores event comments.
type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, eventID, commentID string) (*Comment, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Comment, error)
	Delete(ctx context.Context, commentID string) error
}

// ReviewRepository stores event reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *Review) error
	ListByEventID(ctx context.Context, eventID string) ([]*Review, error)
}

// EngagementService defines RSVP, like, comment, review, and statistics operations.
type EngagementService interface {
	// RSVP returns created=false when the user had already RSVP'd.
	RSVP(ctx context.Context, eventID, userID string) (created bool, err error)
	WithdrawRSVP(ctx context.Context, eventID, userID string) error
	ListAttendees(ctx context.Context, eventID string) ([]*User, error)
	ListMyRSVPEvents(ctx context.Context, userID string) ([]*Event, error)
	// Like returns created=false when the user had already liked the event.
	Like(ctx context.Context, eventID, userID string) (created bool, err error)
	Unlike(ctx context.Context, eventID, userID string) error
	ListMyLikedEvents(ctx context.Context, userID string) ([]*Event, error)
	AddComment(ctx context.Context, eventID, userID, content string) (*Comment, error)
	ListComments(ctx context.Context, eventID string) ([]*Comment, error)
	DeleteComment(ctx context.Context, eventID, commentID, userID string) error
	SubmitReview(ctx context.Context, eventID, userID string, rating int, content *string) (*Review, error)
	ListReviews(ctx context.Context, eventID string) ([]*Review, error)
	EventStats(ctx context.Context, eventID string) (*EventStats, error)
	GlobalStats(ctx context.Context) (*GlobalStats, error)
}
