// Package dates converts between the canonical YYYY-MM-DD form used by the
// application and the representations found in the sheet. Old rows written
// through spreadsheet tooling hold a numeric day serial instead of an ISO
// string; that encoding (epoch 1900-01-01, serial 1 = the epoch itself) is
// reproduced here exactly as the historical data expects it, off-by-one quirk
// included. Changing the conversion would silently shift every legacy row.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// StorageLayout is the canonical form records are written with.
	StorageLayout = "2006-01-02"
	// displayLayout renders dates for list views, day first.
	displayLayout = "02/01/2006"
	// NoDate is shown when a row has no date at all.
	NoDate = "N/A"
)

var (
	isoDate     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	serialEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

	// fallbackLayouts covers the stray formats seen in hand-edited rows.
	fallbackLayouts = []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006/01/02",
		"02/01/2006",
	}
)

// FromSerial converts a spreadsheet day serial to a calendar date.
func FromSerial(serial float64) time.Time {
	return serialEpoch.Add(time.Duration((serial - 1) * float64(24*time.Hour)))
}

// Parse attempts every representation the sheet is known to hold. The second
// return value reports whether anything matched.
func Parse(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}

	if isoDate.MatchString(trimmed) {
		t, err := time.Parse(StorageLayout, trimmed)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	if serial, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return FromSerial(serial), true
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ToDisplay renders a stored date for list views. It never fails: empty input
// becomes NoDate and anything unparseable is passed through unchanged so the
// row still renders.
func ToDisplay(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return NoDate
	}

	if t, ok := Parse(raw); ok {
		return t.Format(displayLayout)
	}

	return raw
}

// ToStorage normalizes a stored or user-entered date to YYYY-MM-DD. Empty or
// unparseable input falls back to today's date, which is the safe default for
// pre-filling edit forms.
func ToStorage(raw string) string {
	if t, ok := Parse(raw); ok {
		return t.Format(StorageLayout)
	}

	return Today()
}

// Today returns the current local date in storage form.
func Today() string {
	return time.Now().Format(StorageLayout)
}
