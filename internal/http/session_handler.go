package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/generator"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/persistence"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/session"
)

// SessionHandler serves the per-session generation endpoints.
type SessionHandler struct {
	store     *session.Store
	documents persistence.DocumentRepository
	now       func() time.Time
	newID     func() string
	responder responder
}

// NewSessionHandler builds a session handler. The document repository is
// optional; when present, every successful generation is also recorded as
// history, with failures logged and swallowed.
func NewSessionHandler(store *session.Store, documents persistence.DocumentRepository, now func() time.Time, logger *slog.Logger) *SessionHandler {
	if now == nil {
		now = time.Now
	}
	return &SessionHandler{
		store:     store,
		documents: documents,
		now:       now,
		newID:     uuid.NewString,
		responder: newResponder(logger),
	}
}

// Create opens a new session.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	s := h.store.Create()
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, s.State())
}

// Get returns the session state.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFromContext(w, r)
	if !ok {
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, s.State())
}

type settingsPatchRequest struct {
	Title           *string `json:"title"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	DateFormat      *string `json:"date_format"`
	ExcludeWeekends *bool   `json:"exclude_weekends"`
	ExcludeHolidays *bool   `json:"exclude_holidays"`
	Colorize        *bool   `json:"colorize"`
	WeekendColor    *string `json:"weekend_color"`
	HolidayColor    *string `json:"holiday_color"`
}

// UpdateSettings applies partial field mutations. Each present field runs
// through the corresponding sanitizing mutator.
func (h *SessionHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFromContext(w, r)
	if !ok {
		return
	}

	var req settingsPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	if req.Title != nil {
		s.SetTitle(*req.Title)
	}
	if req.StartDate != nil {
		s.SetStartDate(*req.StartDate)
	}
	if req.EndDate != nil {
		s.SetEndDate(*req.EndDate)
	}
	if req.DateFormat != nil {
		s.SetDateFormat(*req.DateFormat)
	}
	if req.ExcludeWeekends != nil {
		s.SetExcludeWeekends(*req.ExcludeWeekends)
	}
	if req.ExcludeHolidays != nil {
		s.SetExcludeHolidays(*req.ExcludeHolidays)
	}
	if req.Colorize != nil {
		s.SetColorize(*req.Colorize)
	}
	if req.WeekendColor != nil {
		s.SetWeekendColor(*req.WeekendColor)
	}
	if req.HolidayColor != nil {
		s.SetHolidayColor(*req.HolidayColor)
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, s.State())
}

// ApplyPreset applies a date-range preset.
func (h *SessionHandler) ApplyPreset(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFromContext(w, r)
	if !ok {
		return
	}

	var preset session.Preset
	if err := json.NewDecoder(r.Body).Decode(&preset); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	if err := s.ApplyPreset(preset); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, s.State())
}

type generateResponse struct {
	Document string `json:"document"`
}

// Generate runs the engine for the session.
func (h *SessionHandler) Generate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFromContext(w, r)
	if !ok {
		return
	}

	doc, err := s.Generate()
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.recordHistory(r, s.Settings(), doc)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, s.State())
}

// Reset restores the session defaults.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFromContext(w, r)
	if !ok {
		return
	}
	s.Reset()
	h.responder.writeJSON(r.Context(), w, http.StatusOK, s.State())
}

// Export downloads the last generated document as a Markdown attachment.
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFromContext(w, r)
	if !ok {
		return
	}

	doc := s.Document()
	if doc == "" {
		h.responder.writeError(r.Context(), w, http.StatusNotFound, errNoDocument)
		return
	}

	title := s.Settings().Title
	if title == "" {
		title = generator.DefaultTitle
	}
	filename := fmt.Sprintf("%s_%s.md", title, h.now().Format("20060102150405"))

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc)); err != nil {
		h.responder.loggerFor(r.Context()).ErrorContext(r.Context(), "failed to write export", "error", err)
	}
}

func (h *SessionHandler) sessionFromContext(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	if h == nil || h.store == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return nil, false
	}

	id, ok := SessionIDFromContext(r.Context())
	if !ok || strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSessionID)
		return nil, false
	}

	s, err := h.store.Get(id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return nil, false
	}
	return s, true
}

// recordHistory persists the generated document. History is best-effort and
// never fails the request.
func (h *SessionHandler) recordHistory(r *http.Request, settings generator.Settings, doc string) {
	if h.documents == nil || doc == "" {
		return
	}

	title := settings.Title
	if title == "" {
		title = generator.DefaultTitle
	}
	record := persistence.Document{
		ID:        h.newID(),
		Title:     title,
		Body:      doc,
		CreatedAt: h.now().UTC(),
	}
	if err := h.documents.CreateDocument(r.Context(), record); err != nil {
		h.responder.loggerFor(r.Context()).WarnContext(r.Context(), "failed to record document history", "error", err)
	}
}
