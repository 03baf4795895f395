package middleware

import (
	"net/http"
	"strings"
)

const (
	corsAllowMethods   = "GET, POST, PATCH, DELETE, OPTIONS"
	corsAllowHeaders   = "Authorization, Content-Type, Accept, " + RequestIDHeader
	corsExposeHeaders  = RequestIDHeader + ", Retry-After, X-RateLimit-Limit, X-RateLimit-Remaining"
	corsMaxAge         = "86400"
	corsWildcardOrigin = "*"
)

// corsPolicy resolves which origins may call the API.
type corsPolicy struct {
	any     bool
	allowed map[string]struct{}
}

func newCORSPolicy(origins []string) corsPolicy {
	p := corsPolicy{allowed: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		switch o {
		case "":
		case corsWildcardOrigin:
			p.any = true
		default:
			p.allowed[o] = struct{}{}
		}
	}
	return p
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin, or "" when it is not allowed.
// Credentials are only allowed for explicitly listed origins.
func (p corsPolicy) allowOrigin(origin string) (value string, credentials bool) {
	if origin == "" {
		return "", false
	}
	if _, ok := p.allowed[origin]; ok {
		return origin, true
	}
	if p.any {
		return corsWildcardOrigin, false
	}
	return "", false
}

func (p corsPolicy) setHeaders(h http.Header, origin string) {
	h.Add("Vary", "Origin")
	value, credentials := p.allowOrigin(origin)
	if value == "" {
		return
	}
	h.Set("Access-Control-Allow-Origin", value)
	h.Set("Access-Control-Expose-Headers", corsExposeHeaders)
	if credentials {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
}

// CORS returns a handler that adds CORS headers for allowed origins and
// responds to OPTIONS preflight requests with 204. An origin of "*" allows
// any caller, without credentials.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	policy := newCORSPolicy(allowedOrigins)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		policy.setHeaders(w.Header(), origin)

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			if value, _ := policy.allowOrigin(origin); value != "" {
				w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
				w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
				w.Header().Set("Access-Control-Max-Age", corsMaxAge)
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
