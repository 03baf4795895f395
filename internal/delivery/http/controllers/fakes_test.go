package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/delivery/http/middleware"
	"eventhub/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// envelope mirrors helpers.APIResponse with a typed payload.
type envelope[T any] struct {
	Data  T                 `json:"data"`
	Error *helpers.APIError `json:"error"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

// newRequest builds a request with path values set the way ServeMux would, authenticated as userID when non-empty.
func newRequest(method, target, body, userID string, pathValues map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "http://test"+target, reader)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	if userID != "" {
		req = req.WithContext(middleware.SetUserID(req.Context(), userID))
	}
	return req
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	events       []*domain.Event
	event        *domain.Event
	err          error
	lastParams   domain.SearchParams
	lastCreate   *domain.Event
	lastEventID  string
	lastUserID   string
	lastUpdate   domain.EventUpdate
	deleteCalled bool
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	f.lastCreate = event
	if f.err != nil {
		return f.err
	}
	event.ID = "ev-new"
	return nil
}

func (f *fakeEventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	f.lastEventID = eventID
	return f.event, f.err
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, eventID, organizerID string, upd domain.EventUpdate) (*domain.Event, error) {
	f.lastEventID, f.lastUserID, f.lastUpdate = eventID, organizerID, upd
	return f.event, f.err
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, eventID, organizerID string) error {
	f.lastEventID, f.lastUserID = eventID, organizerID
	f.deleteCalled = true
	return f.err
}

func (f *fakeEventService) SearchEvents(ctx context.Context, params domain.SearchParams) ([]*domain.Event, error) {
	f.lastParams = params
	return f.events, f.err
}

func (f *fakeEventService) ListMyEvents(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	f.lastUserID = organizerID
	return f.events, f.err
}

// fakeEngagementService implements domain.EngagementService for handler tests.
type fakeEngagementService struct {
	created     bool
	err         error
	users       []*domain.User
	events      []*domain.Event
	comment     *domain.Comment
	comments    []*domain.Comment
	review      *domain.Review
	reviews     []*domain.Review
	eventStats  *domain.EventStats
	globalStats *domain.GlobalStats
	lastEventID string
	lastUserID  string
	lastContent string
	lastRating  int
	lastComment string
}

func (f *fakeEngagementService) RSVP(ctx context.Context, eventID, userID string) (bool, error) {
	f.lastEventID, f.lastUserID = eventID, userID
	return f.created, f.err
}

func (f *fakeEngagementService) WithdrawRSVP(ctx context.Context, eventID, userID string) error {
	f.lastEventID, f.lastUserID = eventID, userID
	return f.err
}

func (f *fakeEngagementService) ListAttendees(ctx context.Context, eventID string) ([]*domain.User, error) {
	f.lastEventID = eventID
	return f.users, f.err
}

func (f *fakeEngagementService) ListMyRSVPEvents(ctx context.Context, userID string) ([]*domain.Event, error) {
	f.lastUserID = userID
	return f.events, f.err
}

func (f *fakeEngagementService) Like(ctx context.Context, eventID, userID string) (bool, error) {
	f.lastEventID, f.lastUserID = eventID, userID
	return f.created, f.err
}

func (f *fakeEngagementService) Unlike(ctx context.Context, eventID, userID string) error {
	f.lastEventID, f.lastUserID = eventID, userID
	return f.err
}

func (f *fakeEngagementService) ListMyLikedEvents(ctx context.Context, userID string) ([]*domain.Event, error) {
	f.lastUserID = userID
	return f.events, f.err
}

func (f *fakeEngagementService) AddComment(ctx context.Context, eventID, userID, content string) (*domain.Comment, error) {
	f.lastEventID, f.lastUserID, f.lastContent = eventID, userID, content
	return f.comment, f.err
}

func (f *fakeEngagementService) ListComments(ctx context.Context, eventID string) ([]*domain.Comment, error) {
	f.lastEventID = eventID
	return f.comments, f.err
}

func (f *fakeEngagementService) DeleteComment(ctx context.Context, eventID, commentID, userID string) error {
	f.lastEventID, f.lastComment, f.lastUserID = eventID, commentID, userID
	return f.err
}

func (f *fakeEngagementService) SubmitReview(ctx context.Context, eventID, userID string, rating int, content *string) (*domain.Review, error) {
	f.lastEventID, f.lastUserID, f.lastRating = eventID, userID, rating
	return f.review, f.err
}

func (f *fakeEngagementService) ListReviews(ctx context.Context, eventID string) ([]*domain.Review, error) {
	f.lastEventID = eventID
	return f.reviews, f.err
}

func (f *fakeEngagementService) EventStats(ctx context.Context, eventID string) (*domain.EventStats, error) {
	f.lastEventID = eventID
	return f.eventStats, f.err
}

func (f *fakeEngagementService) GlobalStats(ctx context.Context) (*domain.GlobalStats, error) {
	return f.globalStats, f.err
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	user         *domain.User
	users        []*domain.User
	token        string
	followed     bool
	err          error
	lastEmail    string
	lastPassword string
	lastUsername string
	lastID       string
	lastTarget   string
	lastUpdate   domain.ProfileUpdate
}

func (f *fakeUserService) Register(ctx context.Context, email, password, username string) (*domain.User, error) {
	f.lastEmail, f.lastPassword, f.lastUsername = email, password, username
	return f.user, f.err
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	f.lastEmail, f.lastPassword = email, password
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.user, nil
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.lastID = id
	return f.user, f.err
}

func (f *fakeUserService) UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	f.lastID, f.lastUpdate = id, upd
	return f.user, f.err
}

func (f *fakeUserService) ToggleFollow(ctx context.Context, targetID, currentID string) (bool, *domain.User, error) {
	f.lastTarget, f.lastID = targetID, currentID
	if f.err != nil {
		return false, nil, f.err
	}
	return f.followed, f.user, nil
}

func (f *fakeUserService) ListFollowers(ctx context.Context, userID string) ([]*domain.User, error) {
	f.lastID = userID
	return f.users, f.err
}

func (f *fakeUserService) ListFollowings(ctx context.Context, userID string) ([]*domain.User, error) {
	f.lastID = userID
	return f.users, f.err
}

// fakeCatalogService implements domain.CatalogService for handler tests.
type fakeCatalogService struct {
	tags       []*domain.Tag
	categories []*domain.Category
	err        error
}

func (f *fakeCatalogService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	return f.tags, f.err
}

func (f *fakeCatalogService) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	for _, t := range f.tags {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return f.categories, f.err
}

func (f *fakeCatalogService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}
