package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/auth"
)

func TestRequestLoggerPassesThrough(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var sawLogger bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if LoggerFromContext(r.Context()) != nil {
			sawLogger = true
		}
		w.WriteHeader(http.StatusNoContent)
	})

	handler := RequestLogger(logger)(inner)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
	if !sawLogger {
		t.Fatal("expected request logger in context")
	}
	logged := buf.String()
	if !strings.Contains(logged, "request started") || !strings.Contains(logged, "request completed") {
		t.Fatalf("unexpected log output:\n%s", logged)
	}
	if !strings.Contains(logged, `"request_id"`) || !strings.Contains(logged, `"path":"/health"`) {
		t.Fatalf("expected request attributes in log output:\n%s", logged)
	}
}

func TestBasicAuth(t *testing.T) {
	t.Parallel()

	hash, err := auth.CreatePasswordHash("open sesame", auth.DefaultArgon2idParams)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := BasicAuth("admin", hash, nil)(inner)

	t.Run("missing credentials", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/sessions", nil))
		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", recorder.Code)
		}
		if got := recorder.Header().Get("WWW-Authenticate"); !strings.Contains(got, "Basic") {
			t.Fatalf("expected challenge header, got %q", got)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
		req.SetBasicAuth("admin", "guess")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", recorder.Code)
		}
	})

	t.Run("wrong username", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
		req.SetBasicAuth("root", "open sesame")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", recorder.Code)
		}
	})

	t.Run("valid credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
		req.SetBasicAuth("admin", "open sesame")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
	})
}

func TestBasicAuthDisabledWhenUnconfigured(t *testing.T) {
	t.Parallel()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := BasicAuth("", "", nil)(inner)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/sessions", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", recorder.Code)
	}
}
