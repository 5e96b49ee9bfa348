package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/persistence"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/sanitize"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/session"
)

// SettingsHandler serves the persisted settings slot. Persistence failures
// degrade to defaults instead of failing the request: losing stored options
// must never break the app.
type SettingsHandler struct {
	repo      persistence.SettingsRepository
	responder responder
}

// NewSettingsHandler builds the settings slot handler.
func NewSettingsHandler(repo persistence.SettingsRepository, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{repo: repo, responder: newResponder(logger)}
}

type storedSettingsResponse struct {
	Stored   bool                       `json:"stored"`
	Settings persistence.StoredSettings `json:"settings"`
}

func defaultStoredSettings() persistence.StoredSettings {
	return persistence.StoredSettings{
		DateFormat:   sanitize.DefaultDateFormat,
		WeekendColor: session.DefaultWeekendColor,
		HolidayColor: session.DefaultHolidayColor,
	}
}

// Get returns the slot contents, or the defaults with stored=false when the
// slot is empty or unreadable.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	response := storedSettingsResponse{Settings: defaultStoredSettings()}
	if h.repo != nil {
		stored, err := h.repo.LoadSettings(r.Context())
		switch {
		case err == nil:
			response.Stored = true
			response.Settings = stored
		case errors.Is(err, persistence.ErrNotFound):
			// Empty slot, defaults apply.
		default:
			h.responder.loggerFor(r.Context()).WarnContext(r.Context(), "failed to load stored settings", "error", err)
		}
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, response)
}

// Put sanitizes and stores the slot contents. Write failures are logged and
// reported as success so the caller degrades gracefully.
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	if h == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var settings persistence.StoredSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	settings.Title = sanitize.Title(settings.Title)
	settings.DateFormat = sanitize.DateFormat(settings.DateFormat)
	settings.WeekendColor = sanitize.ColorValue(settings.WeekendColor)
	settings.HolidayColor = sanitize.ColorValue(settings.HolidayColor)

	if h.repo != nil {
		if err := h.repo.SaveSettings(r.Context(), settings); err != nil {
			h.responder.loggerFor(r.Context()).WarnContext(r.Context(), "failed to store settings", "error", err)
		}
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// Delete clears the slot.
func (h *SettingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if h.repo != nil {
		if err := h.repo.ClearSettings(r.Context()); err != nil {
			h.responder.loggerFor(r.Context()).WarnContext(r.Context(), "failed to clear stored settings", "error", err)
		}
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}
