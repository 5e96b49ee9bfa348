package http

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/auth"
)

// RequestLogger attaches a per-request logger to the context and logs
// request start and completion.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	var counter atomic.Uint64

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := counter.Add(1)
			logger := base.With(
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
			)

			ctx := ContextWithLogger(r.Context(), logger)
			start := time.Now()
			logger.InfoContext(ctx, "request started")
			next.ServeHTTP(w, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "duration", time.Since(start))
		})
	}
}

// BasicAuth gates every request behind HTTP basic auth, verifying the
// password against an argon2id digest. Empty username and digest disable the
// gate.
func BasicAuth(username, passwordHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		if username == "" || passwordHash == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="markdays"`)
				responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingBasicCreds)
				return
			}

			userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
			if err := auth.VerifyPassword(passwordHash, password); err != nil || !userMatch {
				w.Header().Set("WWW-Authenticate", `Basic realm="markdays"`)
				responder.writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Message: "認証に失敗しました。"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
