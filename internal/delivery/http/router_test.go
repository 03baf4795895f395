package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/domain"
)

// Stubs embed the service interfaces; only the methods a test routes to are implemented.
type stubEvents struct {
	domain.EventService
	searched bool
}

func (s *stubEvents) SearchEvents(ctx context.Context, params domain.SearchParams) ([]*domain.Event, error) {
	s.searched = true
	return []*domain.Event{}, nil
}

type stubEngagement struct {
	domain.EngagementService
	globalCalled bool
	statsEventID string
}

func (s *stubEngagement) GlobalStats(ctx context.Context) (*domain.GlobalStats, error) {
	s.globalCalled = true
	return &domain.GlobalStats{TotalEvents: 3}, nil
}

func (s *stubEngagement) EventStats(ctx context.Context, eventID string) (*domain.EventStats, error) {
	s.statsEventID = eventID
	return &domain.EventStats{EventID: eventID}, nil
}

type stubUsers struct {
	domain.UserService
}

func (s *stubUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id, Email: "a@b.com"}, nil
}

type stubCatalog struct {
	domain.CatalogService
}

type stubVerifier struct{}

func (stubVerifier) Verify(token string) (string, error) {
	if token == "good" {
		return "user-1", nil
	}
	return "", errors.New("bad token")
}

func newTestRouter(events *stubEvents, engagement *stubEngagement) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(RouterDeps{
		Events:             controllers.NewEventController(logger, events),
		Engagement:         controllers.NewEngagementController(logger, engagement),
		Users:              controllers.NewUserController(logger, &stubUsers{}),
		Catalog:            controllers.NewCatalogController(logger, &stubCatalog{}),
		Verifier:           stubVerifier{},
		Logger:             logger,
		CORSAllowedOrigins: []string{"http://app.test"},
		RateLimitPerMinute: 2,
	})
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		token      string
		wantStatus int
	}{
		{name: "public list", method: http.MethodGet, target: "/events", wantStatus: http.StatusOK},
		{name: "list with bad token", method: http.MethodGet, target: "/events", token: "bad", wantStatus: http.StatusUnauthorized},
		{name: "create requires auth", method: http.MethodPost, target: "/events", wantStatus: http.StatusUnauthorized},
		{name: "me with token", method: http.MethodGet, target: "/users/me", token: "good", wantStatus: http.StatusOK},
		{name: "me without token", method: http.MethodGet, target: "/users/me", wantStatus: http.StatusUnauthorized},
		{name: "method not allowed", method: http.MethodPut, target: "/events/ev-1", wantStatus: http.StatusMethodNotAllowed},
		{name: "unknown path", method: http.MethodGet, target: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubEvents{}, &stubEngagement{})
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestRouter_GlobalStatsBeatsEventID(t *testing.T) {
	engagement := &stubEngagement{}
	router := newTestRouter(&stubEvents{}, engagement)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/events/stats", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, engagement.globalCalled)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/events/ev-7/stats", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ev-7", engagement.statsEventID)
}

func TestRouter_ListIsRateLimited(t *testing.T) {
	events := &stubEvents{}
	router := newTestRouter(events, &stubEngagement{})

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.True(t, events.searched)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(&stubEvents{}, &stubEngagement{})
	req := httptest.NewRequest(http.MethodOptions, "/events", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://app.test", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_PanicsAreRecovered(t *testing.T) {
	router := newTestRouter(&stubEvents{}, &stubEngagement{})
	// stubCatalog does not implement ListTags, so the embedded nil interface panics.
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/tags", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
