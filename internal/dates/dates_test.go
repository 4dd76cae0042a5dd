package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkpatel/salestrack/internal/dates"
)

// Fixed reference vectors for the legacy day-serial encoding: epoch
// 1900-01-01, serial 1 = the epoch. These values pin the historical
// convention the stored data depends on; they must never be "corrected".
var serialVectors = []struct {
	serial string
	want   string
}{
	{"1", "1900-01-01"},
	{"2", "1900-01-02"},
	{"366", "1901-01-01"},
	{"45292", "2024-01-02"},
	{"45844", "2025-07-07"},
}

func TestToStorageSerialReferenceTable(t *testing.T) {
	for _, tc := range serialVectors {
		assert.Equal(t, tc.want, dates.ToStorage(tc.serial), "serial %s", tc.serial)
	}
}

func TestParseISO(t *testing.T) {
	parsed, ok := dates.Parse("2024-06-01")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), parsed)
}

func TestToDisplay(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"iso date", "2024-06-01", "01/06/2024"},
		{"serial", "45844", "07/07/2025"},
		{"empty", "", "N/A"},
		{"whitespace only", "   ", "N/A"},
		{"garbage passes through", "not-a-date", "not-a-date"},
		{"rfc3339", "2024-06-01T10:30:00Z", "01/06/2024"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, dates.ToDisplay(tc.in))
		})
	}
}

func TestToDisplayNeverPanics(t *testing.T) {
	inputs := []string{"", " ", "NaN", "2024-13-45", "-5", "1e9", "2024-06-01", "45844", "\x00"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { _ = dates.ToDisplay(in) }, "input %q", in)
	}
}

func TestToStorageRoundTrip(t *testing.T) {
	// Canonical dates survive a storage round trip unchanged, and the
	// display form refers to the same calendar day.
	for _, d := range []string{"2024-06-01", "1999-12-31", "2025-07-07"} {
		stored := dates.ToStorage(d)
		require.Equal(t, d, stored)

		parsed, ok := dates.Parse(stored)
		require.True(t, ok)
		assert.Equal(t, d, parsed.Format(dates.StorageLayout))
	}
}

func TestToStorageFallsBackToToday(t *testing.T) {
	today := time.Now().Format(dates.StorageLayout)

	assert.Equal(t, today, dates.ToStorage(""))
	assert.Equal(t, today, dates.ToStorage("definitely not a date"))
}
