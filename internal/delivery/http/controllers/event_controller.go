package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
	"eventhub/internal/search"
)

// CreateEventRequest is the request body for POST /events. Dates are YYYY-MM-DD.
type CreateEventRequest struct {
	Title                string           `json:"title"`
	Description          string           `json:"description"`
	StartDate            string           `json:"start_date"`
	EndDate              string           `json:"end_date"`
	Location             string           `json:"location"`
	City                 *string          `json:"city"`
	Country              *string          `json:"country"`
	Category             string           `json:"category"`
	Tags                 []string         `json:"tags"`
	IsOnline             bool             `json:"is_online"`
	Link                 string           `json:"link"`
	Status               string           `json:"status"`
	Capacity             *int             `json:"capacity"`
	Price                *decimal.Decimal `json:"price" swaggertype:"string"`
	RegistrationDeadline *time.Time       `json:"registration_deadline"`
	Featured             bool             `json:"featured"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Location) == "" {
		errs = append(errs, "location is required")
	}
	if strings.TrimSpace(c.Category) == "" {
		errs = append(errs, "category is required")
	}
	start, startErr := time.Parse(domain.DateLayout, c.StartDate)
	if startErr != nil {
		errs = append(errs, "start_date must be YYYY-MM-DD")
	}
	end, endErr := time.Parse(domain.DateLayout, c.EndDate)
	if endErr != nil {
		errs = append(errs, "end_date must be YYYY-MM-DD")
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		errs = append(errs, "end_date must be on or after start_date")
	}
	if c.Status != "" && !domain.EventStatus(c.Status).Valid() {
		errs = append(errs, "status must be scheduled, ongoing or canceled")
	}
	return errs
}

func (c CreateEventRequest) toEvent(organizerID string) *domain.Event {
	start, _ := time.Parse(domain.DateLayout, c.StartDate)
	end, _ := time.Parse(domain.DateLayout, c.EndDate)
	e := domain.NewEvent(strings.TrimSpace(c.Title), c.Description, strings.TrimSpace(c.Location), organizerID, start, end, strings.TrimSpace(c.Category), c.Tags)
	e.City = c.City
	e.Country = c.Country
	e.IsOnline = c.IsOnline
	e.Link = c.Link
	if c.Status != "" {
		e.Status = domain.EventStatus(c.Status)
	}
	e.Capacity = c.Capacity
	e.Price = c.Price
	e.RegistrationDeadline = c.RegistrationDeadline
	e.Featured = c.Featured
	return e
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Title                *string          `json:"title"`
	Description          *string          `json:"description"`
	StartDate            *string          `json:"start_date"`
	EndDate              *string          `json:"end_date"`
	Location             *string          `json:"location"`
	City                 *string          `json:"city"`
	Country              *string          `json:"country"`
	Category             *string          `json:"category"`
	Tags                 *[]string        `json:"tags"`
	IsOnline             *bool            `json:"is_online"`
	Link                 *string          `json:"link"`
	Status               *string          `json:"status"`
	Capacity             *int             `json:"capacity"`
	Price                *decimal.Decimal `json:"price" swaggertype:"string"`
	RegistrationDeadline *time.Time       `json:"registration_deadline"`
	Featured             *bool            `json:"featured"`
}

// Validate implements Validator. Cross-field date rules are checked by the service against the stored event.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	if u.Category != nil && strings.TrimSpace(*u.Category) == "" {
		errs = append(errs, "category cannot be empty")
	}
	if u.StartDate != nil {
		if _, err := time.Parse(domain.DateLayout, *u.StartDate); err != nil {
			errs = append(errs, "start_date must be YYYY-MM-DD")
		}
	}
	if u.EndDate != nil {
		if _, err := time.Parse(domain.DateLayout, *u.EndDate); err != nil {
			errs = append(errs, "end_date must be YYYY-MM-DD")
		}
	}
	if u.Status != nil && !domain.EventStatus(*u.Status).Valid() {
		errs = append(errs, "status must be scheduled, ongoing or canceled")
	}
	return errs
}

func parseDatePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(domain.DateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

func (u UpdateEventRequest) toUpdate() domain.EventUpdate {
	upd := domain.EventUpdate{
		Title:                u.Title,
		Description:          u.Description,
		StartDate:            parseDatePtr(u.StartDate),
		EndDate:              parseDatePtr(u.EndDate),
		Location:             u.Location,
		City:                 u.City,
		Country:              u.Country,
		CategoryName:         u.Category,
		TagNames:             u.Tags,
		IsOnline:             u.IsOnline,
		Link:                 u.Link,
		Capacity:             u.Capacity,
		Price:                u.Price,
		RegistrationDeadline: u.RegistrationDeadline,
		Featured:             u.Featured,
	}
	if u.Status != nil {
		s := domain.EventStatus(*u.Status)
		upd.Status = &s
	}
	return upd
}

// EventSuccessResponse is the success response envelope for single-event endpoints.
type EventSuccessResponse struct {
	Data  EventResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success response envelope for GET /events (200).
type EventListSuccessResponse struct {
	Data  EventListResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventsSuccessResponse is the success response envelope for unpaginated event lists.
type EventsSuccessResponse struct {
	Data  []EventResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventController handles event CRUD and search.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

// NewEventController creates an EventController with the given logger and service.
func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary Search events
// @Description Lists events matching the optional filters, ordered by start date. Results are cached for a short time, so recent changes may take up to a minute to appear.
// @Tags events
// @Produce json
// @Param query query string false "Substring of title or description (case-insensitive)"
// @Param date query string false "Exact start date (YYYY-MM-DD)"
// @Param category query string false "Category name (case-insensitive)"
// @Param location query string false "Substring of location (case-insensitive)"
// @Param tags query string false "Comma-separated tag names; matches any"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 10, max 100)"
// @Success 200 {object} controllers.EventListSuccessResponse "data contains events and pagination"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := search.ParamsFromValues(r.URL.Query())
	page := helpers.ParsePagination(r)
	events, err := c.Service.SearchEvents(r.Context(), params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventListResponse{
		Events:     toEventResponses(helpers.Paginate(events, page)),
		Pagination: helpers.NewPaginationMeta(page.Page, page.PageSize, len(events)),
	})
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event owned by the caller. Category and tags are created by name when missing. Followers of the caller are notified by email.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := req.toEvent(userID)
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toEventResponse(event))
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventResponse(event))
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partially updates an event. Only the organizer can update. Passing tags replaces the tag set.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), r.PathValue("eventID"), userID, req.toUpdate())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventResponse(event))
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Only the organizer can delete.
// @Tags events
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), r.PathValue("eventID"), userID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMyEvents godoc
// @Summary List my events
// @Description Events organized by the caller, newest first.
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventsSuccessResponse "data contains events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /my-events [get]
func (c *EventController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	events, err := c.Service.ListMyEvents(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventResponses(events))
}
