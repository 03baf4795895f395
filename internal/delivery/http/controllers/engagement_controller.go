package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

// AddCommentRequest is the request body for POST /events/{eventID}/comments.
type AddCommentRequest struct {
	Content string `json:"content"`
}

// Validate implements Validator.
func (a AddCommentRequest) Validate() []string {
	if strings.TrimSpace(a.Content) == "" {
		return []string{"content is required"}
	}
	return nil
}

// SubmitReviewRequest is the request body for POST /events/{eventID}/reviews.
type SubmitReviewRequest struct {
	Rating  int     `json:"rating"`
	Content *string `json:"content"`
}

// Validate implements Validator.
func (s SubmitReviewRequest) Validate() []string {
	if s.Rating < domain.MinReviewRating || s.Rating > domain.MaxReviewRating {
		return []string{"rating must be between 1 and 5"}
	}
	return nil
}

// MessageSuccessResponse is the success response envelope for endpoints that report an outcome.
type MessageSuccessResponse struct {
	Data  helpers.MessageResponse `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// UsersSuccessResponse is the success response envelope for user lists.
type UsersSuccessResponse struct {
	Data  []UserResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CommentSuccessResponse is the success response envelope for POST /events/{eventID}/comments (201).
type CommentSuccessResponse struct {
	Data  CommentResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CommentsSuccessResponse is the success response envelope for GET /events/{eventID}/comments (200).
type CommentsSuccessResponse struct {
	Data  []CommentResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ReviewSuccessResponse is the success response envelope for POST /events/{eventID}/reviews (201).
type ReviewSuccessResponse struct {
	Data  ReviewResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ReviewsSuccessResponse is the success response envelope for GET /events/{eventID}/reviews (200).
type ReviewsSuccessResponse struct {
	Data  []ReviewResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventStatsSuccessResponse is the success response envelope for GET /events/{eventID}/stats (200).
type EventStatsSuccessResponse struct {
	Data  domain.EventStats `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GlobalStatsSuccessResponse is the success response envelope for GET /events/stats (200).
type GlobalStatsSuccessResponse struct {
	Data  domain.GlobalStats `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// EngagementController handles RSVPs, likes, comments, reviews, and statistics.
type EngagementController struct {
	Logger  *slog.Logger
	Service domain.EngagementService
}

// NewEngagementController creates an EngagementController with the given logger and service.
func NewEngagementController(logger *slog.Logger, svc domain.EngagementService) *EngagementController {
	return &EngagementController{
		Logger:  logger,
		Service: svc,
	}
}

// RSVP godoc
// @Summary RSVP to an event
// @Tags engagement
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 201 {object} controllers.MessageSuccessResponse "RSVP recorded"
// @Success 200 {object} controllers.MessageSuccessResponse "already RSVP'd"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (event canceled)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/rsvp [post]
func (c *EngagementController) RSVP(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	created, err := c.Service.RSVP(r.Context(), r.PathValue("eventID"), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if !created {
		helpers.WriteMessage(w, http.StatusOK, "You have already RSVP'd to this event.")
		return
	}
	helpers.WriteMessage(w, http.StatusCreated, "Successfully RSVP'd to the event!")
}

// WithdrawRSVP godoc
// @Summary Withdraw an RSVP
// @Tags engagement
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.MessageSuccessResponse "RSVP withdrawn"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (not RSVP'd)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/rsvp [delete]
func (c *EngagementController) WithdrawRSVP(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	if err := c.Service.WithdrawRSVP(r.Context(), r.PathValue("eventID"), userID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteMessage(w, http.StatusOK, "Your RSVP has been withdrawn.")
}

// ListAttendees godoc
// @Summary List attendees of an event
// @Tags engagement
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.UsersSuccessResponse "data contains users"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/attendees [get]
func (c *EngagementController) ListAttendees(w http.ResponseWriter, r *http.Request) {
	users, err := c.Service.ListAttendees(r.Context(), r.PathValue("eventID"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toUserResponses(users))
}

// ListMyRSVPEvents godoc
// @Summary List events I RSVP'd to
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventsSuccessResponse "data contains events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /my-events/rsvp [get]
func (c *EngagementController) ListMyRSVPEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	events, err := c.Service.ListMyRSVPEvents(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventResponses(events))
}

// Like godoc
// @Summary Like an event
// @Tags engagement
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 201 {object} controllers.MessageSuccessResponse "event liked"
// @Success 200 {object} controllers.MessageSuccessResponse "already liked"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/like [post]
func (c *EngagementController) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	created, err := c.Service.Like(r.Context(), r.PathValue("eventID"), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if !created {
		helpers.WriteMessage(w, http.StatusOK, "You have already liked this event.")
		return
	}
	helpers.WriteMessage(w, http.StatusCreated, "Event liked successfully!")
}

// Unlike godoc
// @Summary Unlike an event
// @Tags engagement
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.MessageSuccessResponse "event unliked"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (not liked)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/like [delete]
func (c *EngagementController) Unlike(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	if err := c.Service.Unlike(r.Context(), r.PathValue("eventID"), userID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteMessage(w, http.StatusOK, "Event unliked successfully.")
}

// ListMyLikedEvents godoc
// @Summary List events I liked
// @Tags me
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventsSuccessResponse "data contains events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /my-events/liked [get]
func (c *EngagementController) ListMyLikedEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	events, err := c.Service.ListMyLikedEvents(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toEventResponses(events))
}

// ListComments godoc
// @Summary List comments on an event
// @Tags engagement
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.CommentsSuccessResponse "data contains comments, oldest first"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/comments [get]
func (c *EngagementController) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := c.Service.ListComments(r.Context(), r.PathValue("eventID"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	out := make([]CommentResponse, 0, len(comments))
	for _, cm := range comments {
		out = append(out, toCommentResponse(cm))
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}

// AddComment godoc
// @Summary Comment on an event
// @Tags engagement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body AddCommentRequest true "Comment"
// @Success 201 {object} controllers.CommentSuccessResponse "data contains the comment"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/comments [post]
func (c *EngagementController) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var req AddCommentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	comment, err := c.Service.AddComment(r.Context(), r.PathValue("eventID"), userID, req.Content)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toCommentResponse(comment))
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Only the comment author can delete it.
// @Tags engagement
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param commentID path string true "Comment ID"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not author)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/comments/{commentID} [delete]
func (c *EngagementController) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteComment(r.Context(), r.PathValue("eventID"), r.PathValue("commentID"), userID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListReviews godoc
// @Summary List reviews of an event
// @Tags engagement
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.ReviewsSuccessResponse "data contains reviews, newest first"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/reviews [get]
func (c *EngagementController) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := c.Service.ListReviews(r.Context(), r.PathValue("eventID"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	out := make([]ReviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, toReviewResponse(rv))
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}

// SubmitReview godoc
// @Summary Review an event
// @Tags engagement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body SubmitReviewRequest true "Review (rating 1-5, content optional)"
// @Success 201 {object} controllers.ReviewSuccessResponse "data contains the review"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/reviews [post]
func (c *EngagementController) SubmitReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var req SubmitReviewRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	review, err := c.Service.SubmitReview(r.Context(), r.PathValue("eventID"), userID, req.Rating, req.Content)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, toReviewResponse(review))
}

// EventStats godoc
// @Summary Engagement statistics for an event
// @Tags stats
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventStatsSuccessResponse "data contains counters"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/stats [get]
func (c *EngagementController) EventStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.EventStats(r.Context(), r.PathValue("eventID"))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// GlobalStats godoc
// @Summary Platform-wide statistics
// @Tags stats
// @Produce json
// @Success 200 {object} controllers.GlobalStatsSuccessResponse "data contains counters"
// @Router /events/stats [get]
func (c *EngagementController) GlobalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.GlobalStats(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}
