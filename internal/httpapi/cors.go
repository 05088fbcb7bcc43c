package httpapi

import (
	"net/http"
	"slices"
	"strconv"
)

// DefaultCORSMaxAge is the preflight cache lifetime applied when none is
// configured or the configured value is invalid.
const DefaultCORSMaxAge = 86400

// CORSConfig controls the cross-origin headers attached to responses. The
// zero value emits no CORS headers at all.
type CORSConfig struct {
	// AllowedOrigins lists explicit origins. Ignored when Wildcard is set.
	AllowedOrigins []string
	// Wildcard allows any origin. Must not be combined with
	// AllowCredentials; configuration parsing rejects that pairing.
	Wildcard bool
	// AllowCredentials permits cookies and authorization headers.
	AllowCredentials bool
	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int
}

// Enabled reports whether any cross-origin policy is configured.
func (c CORSConfig) Enabled() bool {
	return c.Wildcard || len(c.AllowedOrigins) > 0
}

// corsMiddleware applies the configured cross-origin policy and answers
// preflight requests. Requests without an Origin header pass through
// untouched.
func corsMiddleware(cfg CORSConfig, next http.Handler) http.Handler {
	if !cfg.Enabled() {
		return next
	}
	maxAge := strconv.Itoa(cfg.MaxAge)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		preflight := r.Method == http.MethodOptions &&
			r.Header.Get("Access-Control-Request-Method") != ""

		switch {
		case cfg.Wildcard:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case slices.Contains(cfg.AllowedOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		default:
			// Disallowed origin: answer preflights without allow headers
			// so browsers block the call, serve plain requests normally.
			if preflight {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if cfg.AllowCredentials {
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if preflight {
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			w.Header().Set("Access-Control-Max-Age", maxAge)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
