package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/edhr/leave-engine/identity"
	"github.com/edhr/leave-engine/leave"
)

// =============================================================================
// REQUEST LOGGING
// =============================================================================

// RequestLogger logs each request with method, path, status, and latency.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}

// =============================================================================
// AUTHENTICATION
// =============================================================================

type contextKey string

const userContextKey contextKey = "leave.user"

// Authenticator resolves the Bearer session token into the current user
// and stores it in the request context. Requests without a valid session
// get 401.
func Authenticator(sessions *identity.Sessions, directory *identity.Directory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Missing session token", nil)
				return
			}

			claims, err := sessions.Verify(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid or expired session", nil)
				return
			}

			user, err := directory.Lookup(claims.Subject)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Unknown session subject", nil)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

// currentUser returns the authenticated user placed by Authenticator.
func currentUser(ctx context.Context) (leave.User, bool) {
	user, ok := ctx.Value(userContextKey).(leave.User)
	return user, ok
}

// RequireApprover rejects callers whose role cannot decide requests.
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Missing session", nil)
			return
		}
		if user.Role != leave.RoleManager && user.Role != leave.RoleHR {
			writeError(w, http.StatusForbidden, "Only managers and HR can decide requests", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
