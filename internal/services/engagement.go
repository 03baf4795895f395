package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventhub/internal/domain"
)

type engagementService struct {
	eventRepo      domain.EventRepository
	engagementRepo domain.EngagementRepository
	commentRepo    domain.CommentRepository
	reviewRepo     domain.ReviewRepository
	contextTimeout time.Duration
}

// NewEngagementService creates an EngagementService with the given repositories.
func NewEngagementService(
	eventRepo domain.EventRepository,
	engagementRepo domain.EngagementRepository,
	commentRepo domain.CommentRepository,
	reviewRepo domain.ReviewRepository,
	timeout time.Duration,
) domain.EngagementService {
	return &engagementService{
		eventRepo:      eventRepo,
		engagementRepo: engagementRepo,
		commentRepo:    commentRepo,
		reviewRepo:     reviewRepo,
		contextTimeout: timeout,
	}
}

func (s *engagementService) getEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *engagementService) RSVP(ctx context.Context, eventID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return false, err
	}
	if event.Status == domain.EventStatusCanceled {
		return false, domain.ErrEventCanceled
	}
	created, err := s.engagementRepo.AddAttendee(ctx, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("add attendee: %w", err)
	}
	return created, nil
}

func (s *engagementService) WithdrawRSVP(ctx context.Context, eventID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.getEvent(ctx, eventID); err != nil {
		return err
	}
	removed, err := s.engagementRepo.RemoveAttendee(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("remove attendee: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: you have not RSVP'd to this event", domain.ErrInvalidInput)
	}
	return nil
}

func (s *engagementService) ListAttendees(ctx context.Context, eventID string) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.getEvent(ctx, eventID); err != nil {
		return nil, err
	}
	users, err := s.engagementRepo.ListAttendees(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

func (s *engagementService) ListMyRSVPEvents(ctx context.Context, userID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByAttendeeID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list rsvp events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *engagementService) Like(ctx context.Context, eventID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.getEvent(ctx, eventID); err != nil {
		return false, err
	}
	created, err := s.engagementRepo.AddLike(ctx, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("add like: %w", err)
	}
	return created, nil
}

func (s *engagementService) Unlike(ctx context.Context, eventID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.getEvent(ctx, eventID); err != nil {
		return err
	}
	removed, err := s.engagementRepo.RemoveLike(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("remove like: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: you have not liked this event", domain.ErrInvalidInput)
	}
	return nil
}

func (s *engagementService) ListMyLikedEvents(ctx context.Context, userID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListLikedByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list liked events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *engagementService) AddComment(ctx context.Context, eventID, userID, content string) (*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	if _, err := s.getEvent(ctx, eventID); err != nil {
		return nil, err
	}
	c := &domain.Comment{
		EventID:   eventID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

func (s *engagementService) ListComments(ctx context.Context, eventID string) ([]*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.getEvent(ctx, eventID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if comments == nil {
		comments = []*domain.Comment{}
	}
	return comments, nil
}

// DeleteComment removes a comment. Only its author may delete it.
func (s *engagementService) DeleteComment(ctx context.Context, eventID, commentID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := s.commentRepo.GetByID(ctx, eventID, commentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get comment: %w", err)
	}
	if c.UserID != userID {
		return domain.ErrForbidden
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

func (s *engagementService) SubmitReview(ctx context.Context, eventID, userID string, rating int, content *string) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if rating < domain.MinReviewRating || rating > domain.MaxReviewRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", domain.ErrInvalidInput, domain.MinReviewRating, domain.MaxReviewRating)
	}
	if _, err := s.getEvent(ctx, eventID); err != nil {
		return nil, err
	}
	if content != nil {
		trimmed := strings.TrimSpace(*content)
		if trimmed == "" {
			content = nil
		} else {
			content = &trimmed
		}
	}
	rv := &domain.Review{
		EventID:   eventID,
		UserID:    userID,
		Rating:    rating,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.reviewRepo.Create(ctx, rv); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return rv, nil
}

func (s *engagementService) ListReviews(ctx context.Context, eventID string) ([]*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.getEvent(ctx, eventID); err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []*domain.Review{}
	}
	return reviews, nil
}

func (s *engagementService) EventStats(ctx context.Context, eventID string) (*domain.EventStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	stats, err := s.engagementRepo.EventStats(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("event stats: %w", err)
	}
	return stats, nil
}

func (s *engagementService) GlobalStats(ctx context.Context) (*domain.GlobalStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	stats, err := s.engagementRepo.GlobalStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("global stats: %w", err)
	}
	return stats, nil
}
