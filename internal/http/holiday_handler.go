package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/calendar"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/holiday"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/validate"
)

// HolidayHandler serves holiday annotations for a date range.
type HolidayHandler struct {
	holidays  holiday.Calendar
	responder responder
}

// NewHolidayHandler builds the holiday lookup handler.
func NewHolidayHandler(holidays holiday.Calendar, logger *slog.Logger) *HolidayHandler {
	return &HolidayHandler{holidays: holidays, responder: newResponder(logger)}
}

type holidayEntry struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type holidayListResponse struct {
	Holidays []holidayEntry `json:"holidays"`
}

// List returns the holidays inside from..to inclusive. The range obeys the
// same span cap as generation.
func (h *HolidayHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	fromParam := strings.TrimSpace(query.Get("from"))
	toParam := strings.TrimSpace(query.Get("to"))

	if result := validate.DateRange(fromParam, toParam); !result.OK {
		h.responder.writeJSON(r.Context(), w, http.StatusUnprocessableEntity, errorResponse{Message: result.Message})
		return
	}

	from, err := calendar.Parse(fromParam)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDateParam)
		return
	}
	to, err := calendar.Parse(toParam)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDateParam)
		return
	}

	entries := make([]holidayEntry, 0)
	if h.holidays != nil {
		for d := from; !d.After(to); d = d.Add(1) {
			if name, ok := h.holidays.Lookup(d); ok {
				entries = append(entries, holidayEntry{Date: d.String(), Name: name})
			}
		}
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, holidayListResponse{Holidays: entries})
}
