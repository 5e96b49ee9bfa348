package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/generator"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/holiday"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/validate"
)

// GenerateHandler serves stateless generation and validation.
type GenerateHandler struct {
	holidays  holiday.Calendar
	responder responder
}

// NewGenerateHandler builds the stateless generation handler.
func NewGenerateHandler(holidays holiday.Calendar, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{holidays: holidays, responder: newResponder(logger)}
}

// Generate renders a document from a full settings payload without touching
// any session.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if h == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var settings generator.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	doc, err := generator.Generate(settings, h.holidays)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, generateResponse{Document: doc})
}

type validateRequest struct {
	Title        string `json:"title"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	DateFormat   string `json:"date_format"`
	WeekendColor string `json:"weekend_color"`
	HolidayColor string `json:"holiday_color"`
}

type validateResponse struct {
	IsValid bool                       `json:"is_valid"`
	Fields  map[string]validate.Result `json:"fields"`
}

// Validate returns per-field validation results for a settings payload.
func (h *GenerateHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if h == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	fields := map[string]validate.Result{
		"title":         validate.Title(req.Title),
		"date_range":    validate.DateRange(req.StartDate, req.EndDate),
		"date_format":   validate.DateFormat(req.DateFormat),
		"weekend_color": validate.ColorHex(req.WeekendColor),
		"holiday_color": validate.ColorHex(req.HolidayColor),
	}

	valid := true
	for _, result := range fields {
		if !result.OK {
			valid = false
			break
		}
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, validateResponse{IsValid: valid, Fields: fields})
}
