package holiday

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/calendar"
)

// CSV date layouts accepted from the Cabinet Office publication.
var csvDateLayouts = []string{"2006/1/2", "2006/01/02", "2006-01-02"}

// ReadCabinetOfficeCSV parses the official syukujitsu.csv, which is
// published in Shift_JIS with a date and a holiday name per row. Rows that
// fail to parse are skipped with a warning; the header row is skipped
// silently.
func ReadCabinetOfficeCSV(r io.Reader, logger *slog.Logger) ([]Entry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	decoded := transform.NewReader(r, japanese.ShiftJIS.NewDecoder())
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1

	var entries []Entry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("skipping malformed holiday csv row", "error", err)
			continue
		}
		if len(record) < 2 {
			continue
		}

		raw := strings.TrimPrefix(strings.TrimSpace(record[0]), "\uFEFF")
		date, ok := parseCSVDate(raw)
		if !ok {
			// Header rows land here.
			continue
		}

		entries = append(entries, Entry{Date: date, Name: strings.TrimSpace(record[1])})
	}

	return entries, nil
}

// LoadCabinetOfficeCSVFile reads the CSV from disk and returns its entries.
func LoadCabinetOfficeCSVFile(path string, logger *slog.Logger) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("holiday: open csv: %w", err)
	}
	defer f.Close()
	return ReadCabinetOfficeCSV(f, logger)
}

func parseCSVDate(value string) (calendar.Date, bool) {
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return calendar.FromTime(t), true
		}
	}
	return calendar.Date{}, false
}
