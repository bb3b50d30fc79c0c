package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Accepted calendar range. Anything outside is treated as garbage, not data.
const (
	MinYear = 1900
	MaxYear = 2100
)

// Spreadsheet serial epoch. Serial 1 is 1899-12-31. The 1899-12-30 epoch
// (rather than 12-31) absorbs the format's fictitious 1900-02-29, so serials
// from 61 on land on the true calendar without any further shift.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var (
	dayFirstRe  = regexp.MustCompile(`^\s*(\d{1,2})[-/.](\d{1,2})[-/.](\d{4})\s*$`)
	yearFirstRe = regexp.MustCompile(`^\s*(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})\s*$`)
	numericRe   = regexp.MustCompile(`^\s*\d+(\.\d+)?\s*$`)
)

// fallback layouts for values that are dates but not in either dominant
// convention, e.g. ISO timestamps exported by other tools
var genericLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// Parse determines the calendar date a raw cell or header value represents.
// It is total: unparseable input yields ok=false, never a panic. Day-first
// strings are tried before year-first, matching the source data's dominant
// convention, then spreadsheet serial numbers, then generic layouts.
func Parse(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if m := dayFirstRe.FindStringSubmatch(raw); m != nil {
		return makeDate(atoi(m[3]), atoi(m[2]), atoi(m[1]))
	}
	if m := yearFirstRe.FindStringSubmatch(raw); m != nil {
		return makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if numericRe.MatchString(raw) {
		serial, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return ParseSerial(serial)
		}
		return time.Time{}, false
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			if !yearInRange(t.Year()) {
				return time.Time{}, false
			}
			return midnight(t), true
		}
	}

	return time.Time{}, false
}

// ParseSerial converts a spreadsheet serial day count to a calendar date.
// Accepted range is (0, 1_000_000); fractional time-of-day parts are dropped.
func ParseSerial(serial float64) (time.Time, bool) {
	if serial <= 0 || serial >= 1_000_000 {
		return time.Time{}, false
	}
	t := serialEpoch.AddDate(0, 0, int(serial))
	if !yearInRange(t.Year()) {
		return time.Time{}, false
	}
	return t, true
}

// ParseTime validates an already-constructed date value against the accepted
// year range and truncates it to midnight.
func ParseTime(t time.Time) (time.Time, bool) {
	if t.IsZero() || !yearInRange(t.Year()) {
		return time.Time{}, false
	}
	return midnight(t), true
}

// FormatISO renders the canonical YYYY-MM-DD key used for every date
// comparison and grouping in the pipeline. Zero time renders empty.
func FormatISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// makeDate builds a date and rejects values that do not round-trip, such as
// day 31 in a 30-day month, which time.Date would silently normalize.
func makeDate(year, month, day int) (time.Time, bool) {
	if !yearInRange(year) || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func yearInRange(year int) bool {
	return year >= MinYear && year <= MaxYear
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
