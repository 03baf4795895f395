package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name            string
		origins         []string
		method          string
		origin          string
		preflight       bool
		wantStatus      int
		wantAllow       string
		wantCredentials string
		wantMethods     bool
	}{
		{name: "allowed origin", origins: []string{"https://app.example.com/", " "}, method: http.MethodGet, origin: "https://app.example.com", wantStatus: http.StatusOK, wantAllow: "https://app.example.com", wantCredentials: "true"},
		{name: "unknown origin", origins: []string{"https://app.example.com"}, method: http.MethodGet, origin: "https://evil.example.com", wantStatus: http.StatusOK},
		{name: "no origin header", origins: []string{"*"}, method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "wildcard", origins: []string{"*"}, method: http.MethodGet, origin: "https://any.example.com", wantStatus: http.StatusOK, wantAllow: "*"},
		{name: "preflight allowed", origins: []string{"https://app.example.com"}, method: http.MethodOptions, origin: "https://app.example.com", preflight: true, wantStatus: http.StatusNoContent, wantAllow: "https://app.example.com", wantCredentials: "true", wantMethods: true},
		{name: "preflight unknown", origins: []string{"https://app.example.com"}, method: http.MethodOptions, origin: "https://evil.example.com", preflight: true, wantStatus: http.StatusNoContent},
		{name: "plain options passes through", origins: []string{"https://app.example.com"}, method: http.MethodOptions, origin: "https://app.example.com", wantStatus: http.StatusOK, wantAllow: "https://app.example.com", wantCredentials: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := CORS(tt.origins, next)
			req := httptest.NewRequest(tt.method, "http://test/events", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllow, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCredentials, rr.Header().Get("Access-Control-Allow-Credentials"))
			assert.Equal(t, tt.wantMethods, rr.Header().Get("Access-Control-Allow-Methods") != "")
			assert.Equal(t, "Origin", rr.Header().Get("Vary"))
		})
	}
}
