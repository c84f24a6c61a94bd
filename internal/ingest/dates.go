package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// serialEpoch is the spreadsheet day-count epoch (1899-12-30). Serial
// values are whole or fractional days since this date.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// textDateLayouts are tried in order for non-numeric date cells.
var textDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2-Jan-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// ParseCellDate parses a raw date cell. Numeric values are interpreted as
// a spreadsheet-epoch day count; strings go through general date parsing.
// Unparseable values return nil, never an error.
func ParseCellDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t := serialEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
		return &t
	}

	for _, layout := range textDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// MonthKey formats a date as the YYYY-MM join key.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}
