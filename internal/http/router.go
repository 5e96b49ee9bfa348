package http

import (
	"context"
	"net/http"
	"strings"
)

// Pinger reports backing-store health for the liveness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterConfig wires the handlers into the router. Nil handlers leave their
// routes unregistered.
type RouterConfig struct {
	Sessions   *SessionHandler
	Generate   *GenerateHandler
	Holidays   *HolidayHandler
	Settings   *SettingsHandler
	Health     Pinger
	Middleware []func(http.Handler) http.Handler
}

// NewRouter assembles the API routes and applies middleware outermost first.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Sessions != nil {
		mux.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Sessions.Create(w, r)
		})
		mux.HandleFunc("/sessions/", func(w http.ResponseWriter, r *http.Request) {
			id, action := splitSessionPath(r.URL.Path)
			if id == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithSessionID(r.Context(), id))

			switch action {
			case "":
				if r.Method != http.MethodGet {
					methodNotAllowed(w, http.MethodGet)
					return
				}
				cfg.Sessions.Get(w, r)
			case "settings":
				if r.Method != http.MethodPatch {
					methodNotAllowed(w, http.MethodPatch)
					return
				}
				cfg.Sessions.UpdateSettings(w, r)
			case "preset":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Sessions.ApplyPreset(w, r)
			case "generate":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Sessions.Generate(w, r)
			case "reset":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Sessions.Reset(w, r)
			case "export":
				if r.Method != http.MethodGet {
					methodNotAllowed(w, http.MethodGet)
					return
				}
				cfg.Sessions.Export(w, r)
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Generate != nil {
		mux.HandleFunc("/generate", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Generate.Generate(w, r)
		})
		mux.HandleFunc("/validate", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Generate.Validate(w, r)
		})
	}

	if cfg.Holidays != nil {
		mux.HandleFunc("/holidays", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Holidays.List(w, r)
		})
	}

	if cfg.Settings != nil {
		mux.HandleFunc("/settings", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Settings.Get(w, r)
			case http.MethodPut:
				cfg.Settings.Put(w, r)
			case http.MethodDelete:
				cfg.Settings.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
			}
		})
	}

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		if cfg.Health != nil {
			if err := cfg.Health.Ping(r.Context()); err != nil {
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
	})

	var handler http.Handler = mux
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		if cfg.Middleware[i] != nil {
			handler = cfg.Middleware[i](handler)
		}
	}
	return handler
}

// splitSessionPath splits "/sessions/{id}[/{action}]" into its parts.
func splitSessionPath(path string) (id, action string) {
	rest := strings.TrimPrefix(path, "/sessions/")
	if rest == path {
		return "", ""
	}
	id, action, _ = strings.Cut(rest, "/")
	return id, action
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
