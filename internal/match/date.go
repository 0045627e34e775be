package match

import (
	"strings"
	"time"
)

const (
	// DisplayDateLayout is the canonical schedule date form, e.g. "December 13, 2025"
	DisplayDateLayout = "January 2, 2006"
	// DisplayTimeLayout is the 12-hour clock form, e.g. "1:30 PM"
	DisplayTimeLayout = "3:04 PM"

	upstreamDateLayout = "20060102"
	upstreamTimeLayout = "1504"
)

// FormatDate converts an upstream YYYYMMDD value to DisplayDateLayout.
// Values that are not an 8-digit calendar date are returned unchanged.
func FormatDate(raw string) string {
	if len(raw) != 8 || !isDigits(raw) {
		return raw
	}
	t, err := time.Parse(upstreamDateLayout, raw)
	if err != nil {
		return raw
	}
	return t.Format(DisplayDateLayout)
}

// FormatTime converts an upstream 24-hour HHMM value to DisplayTimeLayout.
// Missing or malformed values become Placeholder.
//
//	"0000" -> "12:00 AM"
//	"1200" -> "12:00 PM"
//	"1330" -> "1:30 PM"
func FormatTime(raw string) string {
	if len(raw) != 4 || !isDigits(raw) {
		return Placeholder
	}
	t, err := time.Parse(upstreamTimeLayout, raw)
	if err != nil {
		return Placeholder
	}
	return t.Format(DisplayTimeLayout)
}

// ParseDate attempts to parse a stored schedule date into a time.Time.
// Returns time.Time{} (zero value) if parsing fails.
// Supports formats: "December 13, 2025", "Dec 13, 2025", "12/13/2025", "20251213"
func ParseDate(dateText string) time.Time {
	dateText = strings.TrimSpace(dateText)
	if dateText == "" {
		return time.Time{}
	}

	layouts := []string{
		DisplayDateLayout,
		"Jan 2, 2006",
		"01/02/2006",
		"1/2/2006",
		upstreamDateLayout,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, dateText); err == nil {
			return t
		}
	}

	return time.Time{}
}

// ParseClock parses a DisplayTimeLayout value into hour and minute.
// ok is false for Placeholder or anything unparseable.
func ParseClock(timeText string) (hour, minute int, ok bool) {
	t, err := time.Parse(DisplayTimeLayout, strings.TrimSpace(timeText))
	if err != nil {
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
