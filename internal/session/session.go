// Package session coordinates generation state: the current settings, the
// last generated document, and the flags that gate regeneration.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/calendar"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/generator"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/holiday"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/sanitize"
	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/validate"
)

// Default colors follow the Japanese calendar convention of blue Saturdays
// and red holidays.
const (
	DefaultWeekendColor = "#0000ff"
	DefaultHolidayColor = "#ff0000"
	// DefaultRangeDays is the span of the initial date range.
	DefaultRangeDays = 7
)

var (
	// ErrNotFound is returned when a session id is unknown or expired.
	ErrNotFound = errors.New("session: not found")
	// ErrInvalidPreset is returned for an unknown preset kind or anchor, or
	// a non-positive amount.
	ErrInvalidPreset = errors.New("session: invalid preset")
	// ErrGenerationNotAllowed is returned when Generate is called while the
	// gating rule forbids it.
	ErrGenerationNotAllowed = errors.New("session: generation not allowed")
)

// PresetKind selects the unit of a range preset.
type PresetKind string

// PresetAnchor selects which end of the range the preset is anchored to.
type PresetAnchor string

const (
	PresetDays   PresetKind = "days"
	PresetMonths PresetKind = "months"

	AnchorStart PresetAnchor = "start"
	AnchorEnd   PresetAnchor = "end"
)

// Preset is a range shortcut. Applying one computes the opposite end of the
// date range from the anchor; the record itself exists only so the UI can
// highlight the current selection.
type Preset struct {
	Kind   PresetKind   `json:"kind"`
	Amount int          `json:"amount"`
	Anchor PresetAnchor `json:"anchor"`
}

// DefaultSettings returns the initial settings: an empty title, the default
// date format and colors, and a range of DefaultRangeDays starting today.
func DefaultSettings(now func() time.Time) generator.Settings {
	if now == nil {
		now = time.Now
	}
	today := calendar.Today(now)
	return generator.Settings{
		DateFormat:   sanitize.DefaultDateFormat,
		StartDate:    today.String(),
		EndDate:      calendar.AddDays(today, DefaultRangeDays).String(),
		WeekendColor: DefaultWeekendColor,
		HolidayColor: DefaultHolidayColor,
	}
}

// Session owns one user's generation state. All methods are safe for
// concurrent use.
type Session struct {
	mu sync.Mutex

	id       string
	now      func() time.Time
	holidays holiday.Calendar

	settings        generator.Settings
	snapshot        *generator.Settings
	document        string
	firstGeneration bool
	settingsChanged bool
	preset          *Preset
}

// New creates a session with default settings.
func New(id string, now func() time.Time, holidays holiday.Calendar) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		id:              id,
		now:             now,
		holidays:        holidays,
		settings:        DefaultSettings(now),
		firstGeneration: true,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State is an immutable view of the session for transport.
type State struct {
	ID              string             `json:"id"`
	Settings        generator.Settings `json:"settings"`
	Document        string             `json:"document"`
	FirstGeneration bool               `json:"first_generation"`
	SettingsChanged bool               `json:"settings_changed"`
	CanGenerate     bool               `json:"can_generate"`
	Preset          *Preset            `json:"preset,omitempty"`
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := State{
		ID:              s.id,
		Settings:        s.settings,
		Document:        s.document,
		FirstGeneration: s.firstGeneration,
		SettingsChanged: s.settingsChanged,
		CanGenerate:     s.canGenerateLocked(),
	}
	if s.preset != nil {
		p := *s.preset
		state.Preset = &p
	}
	return state
}

// Settings returns a copy of the current settings.
func (s *Session) Settings() generator.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Document returns the last generated document, "" if none.
func (s *Session) Document() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.document
}

// SetTitle sanitizes and stores the title.
func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Title = sanitize.Title(title)
	s.recomputeChangedLocked()
}

// SetDateFormat sanitizes and stores the format pattern.
func (s *Session) SetDateFormat(format string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.DateFormat = sanitize.DateFormat(format)
	s.recomputeChangedLocked()
}

// SetWeekendColor sanitizes and stores the weekend color.
func (s *Session) SetWeekendColor(color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.WeekendColor = sanitize.ColorValue(color)
	s.recomputeChangedLocked()
}

// SetHolidayColor sanitizes and stores the holiday color.
func (s *Session) SetHolidayColor(color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.HolidayColor = sanitize.ColorValue(color)
	s.recomputeChangedLocked()
}

// SetStartDate stores the raw start date and deselects any preset. Range
// validity is checked at generation time, not here.
func (s *Session) SetStartDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.StartDate = date
	s.preset = nil
	s.recomputeChangedLocked()
}

// SetEndDate stores the raw end date and deselects any preset.
func (s *Session) SetEndDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.EndDate = date
	s.preset = nil
	s.recomputeChangedLocked()
}

// SetExcludeWeekends stores the weekend exclusion flag.
func (s *Session) SetExcludeWeekends(exclude bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.ExcludeWeekends = exclude
	s.recomputeChangedLocked()
}

// SetExcludeHolidays stores the holiday exclusion flag.
func (s *Session) SetExcludeHolidays(exclude bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.ExcludeHolidays = exclude
	s.recomputeChangedLocked()
}

// SetColorize stores the colorize flag.
func (s *Session) SetColorize(colorize bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Colorize = colorize
	s.recomputeChangedLocked()
}

// ApplyPreset computes the opposite end of the date range from the anchored
// end and records the preset for highlighting. It never validates the
// resulting range or triggers generation.
func (s *Session) ApplyPreset(p Preset) error {
	if p.Amount <= 0 {
		return ErrInvalidPreset
	}
	if p.Kind != PresetDays && p.Kind != PresetMonths {
		return ErrInvalidPreset
	}
	if p.Anchor != AnchorStart && p.Anchor != AnchorEnd {
		return ErrInvalidPreset
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	anchorField := s.settings.StartDate
	if p.Anchor == AnchorEnd {
		anchorField = s.settings.EndDate
	}
	anchor, err := calendar.Parse(anchorField)
	if err != nil {
		return errors.New(validate.MsgDatesInvalid)
	}

	var other calendar.Date
	switch {
	case p.Kind == PresetDays && p.Anchor == AnchorStart:
		other = calendar.AddDays(anchor, p.Amount)
	case p.Kind == PresetDays && p.Anchor == AnchorEnd:
		other = anchor.Add(-(p.Amount - 1))
	case p.Kind == PresetMonths && p.Anchor == AnchorStart:
		other = calendar.AddMonths(anchor, p.Amount)
	default:
		other = calendar.ShiftMonths(anchor, -p.Amount).Add(1)
	}

	if p.Anchor == AnchorStart {
		s.settings.EndDate = other.String()
	} else {
		s.settings.StartDate = other.String()
	}
	preset := p
	s.preset = &preset
	s.recomputeChangedLocked()
	return nil
}

// CanGenerate reports whether generation is currently meaningful: title and
// both dates present, and either no generation has happened yet or the
// settings drifted from the last snapshot.
func (s *Session) CanGenerate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canGenerateLocked()
}

func (s *Session) canGenerateLocked() bool {
	if s.settings.Title == "" || s.settings.StartDate == "" || s.settings.EndDate == "" {
		return false
	}
	return s.firstGeneration || s.settingsChanged
}

// Generate runs the engine. On success the document is replaced and the
// current settings become the snapshot; on failure nothing changes and the
// prior document stays intact.
func (s *Session) Generate() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.canGenerateLocked() {
		return "", ErrGenerationNotAllowed
	}

	doc, err := generator.Generate(s.settings, s.holidays)
	if err != nil {
		return "", err
	}

	s.document = doc
	snap := s.settings
	s.snapshot = &snap
	s.settingsChanged = false
	s.firstGeneration = false
	return doc, nil
}

// Reset restores defaults, clears the document and snapshot, and re-arms
// first generation.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = DefaultSettings(s.now)
	s.snapshot = nil
	s.document = ""
	s.firstGeneration = true
	s.settingsChanged = false
	s.preset = nil
}

func (s *Session) recomputeChangedLocked() {
	if s.snapshot == nil {
		s.settingsChanged = false
		return
	}
	s.settingsChanged = s.settings != *s.snapshot
}
