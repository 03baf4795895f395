package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventhub/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	searcher       domain.EventSearcher
	dispatcher     domain.NotificationDispatcher
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventService creates an EventService. A nil dispatcher disables follower notifications.
func NewEventService(
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	searcher domain.EventSearcher,
	dispatcher domain.NotificationDispatcher,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &eventService{
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		searcher:       searcher,
		dispatcher:     dispatcher,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.OrganizerID == "" {
		return fmt.Errorf("%w: event organizer is required", domain.ErrInvalidInput)
	}
	if event.Status == "" {
		event.Status = domain.EventStatusScheduled
	}
	if err := validateEvent(event); err != nil {
		return err
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	s.notifyFollowers(ctx, event)
	return nil
}

// notifyFollowers hands one notification per follower of the organizer to the
// dispatcher. Failures are logged and never surface to the caller.
func (s *eventService) notifyFollowers(ctx context.Context, event *domain.Event) {
	if s.dispatcher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.contextTimeout)
	defer cancel()

	log := s.logger.With("event_id", event.ID, "organizer_id", event.OrganizerID)
	organizer, err := s.userRepo.GetByID(ctx, event.OrganizerID)
	if err != nil {
		log.WarnContext(ctx, "notify followers: load organizer", "err", err)
		return
	}
	followers, err := s.userRepo.ListFollowers(ctx, event.OrganizerID)
	if err != nil {
		log.WarnContext(ctx, "notify followers: list followers", "err", err)
		return
	}

	notifications := make([]domain.EventNotification, 0, len(followers))
	for _, f := range followers {
		if f.Email == "" {
			continue
		}
		notifications = append(notifications, domain.NewEventNotification(f.Email, organizer.DisplayName(), event))
	}
	if len(notifications) == 0 {
		return
	}
	if err := s.dispatcher.Dispatch(ctx, notifications); err != nil {
		log.WarnContext(ctx, "notify followers: dispatch", "followers", len(notifications), "err", err)
		return
	}
	log.InfoContext(ctx, "follower notifications dispatched", "followers", len(notifications))
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, organizerID string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != organizerID {
		return nil, domain.ErrForbidden
	}

	merged := *event
	applyEventUpdate(&merged, upd)
	if err := validateEvent(&merged); err != nil {
		return nil, err
	}

	updated, err := s.eventRepo.Update(ctx, eventID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, organizerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != organizerID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) SearchEvents(ctx context.Context, params domain.SearchParams) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.searcher.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return events, nil
}

func (s *eventService) ListMyEvents(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func validateEvent(e *domain.Event) error {
	var problems []string
	if strings.TrimSpace(e.Title) == "" {
		problems = append(problems, "title is required")
	}
	if strings.TrimSpace(e.Description) == "" {
		problems = append(problems, "description is required")
	}
	if strings.TrimSpace(e.Location) == "" {
		problems = append(problems, "location is required")
	}
	if strings.TrimSpace(e.Category.Name) == "" && e.Category.ID == "" {
		problems = append(problems, "category is required")
	}
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		problems = append(problems, "start_date and end_date are required")
	} else if e.EndDate.Before(e.StartDate) {
		problems = append(problems, "end_date must not be before start_date")
	}
	if !e.Status.Valid() {
		problems = append(problems, "status must be one of scheduled, ongoing, canceled")
	}
	if e.Capacity != nil && *e.Capacity < 0 {
		problems = append(problems, "capacity must not be negative")
	}
	if e.Price != nil && e.Price.IsNegative() {
		problems = append(problems, "price must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

func applyEventUpdate(e *domain.Event, upd domain.EventUpdate) {
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	if upd.StartDate != nil {
		e.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		e.EndDate = *upd.EndDate
	}
	if upd.Location != nil {
		e.Location = *upd.Location
	}
	if upd.CategoryName != nil {
		e.Category = domain.Category{Name: *upd.CategoryName}
	}
	if upd.Status != nil {
		e.Status = *upd.Status
	}
	if upd.Capacity != nil {
		e.Capacity = upd.Capacity
	}
	if upd.Price != nil {
		e.Price = upd.Price
	}
}
