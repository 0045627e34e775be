package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/mat-schedule/internal/match"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortNone       SortOrder = ""
	SortByDate     SortOrder = "date"
	SortByOpponent SortOrder = "opponent"
)

// sortMatches sorts matches in place. The sort is stable so matches that
// compare equal keep their upstream order.
func sortMatches(matches []match.MatchRecord, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(matches, func(i, j int) bool {
			return compareByDate(matches[i], matches[j])
		})
	case SortByOpponent:
		sort.SliceStable(matches, func(i, j int) bool {
			oi, oj := strings.ToLower(matches[i].Opponent), strings.ToLower(matches[j].Opponent)
			if oi != oj {
				return oi < oj
			}
			// If opponents are equal, sort by date
			return compareByDate(matches[i], matches[j])
		})
	}
}

// compareByDate reports whether match i is earlier than match j.
// Matches with unparseable dates sort last.
func compareByDate(i, j match.MatchRecord) bool {
	dateI := match.ParseDate(i.Date)
	dateJ := match.ParseDate(j.Date)

	// If both dates are valid, compare them, then by clock time
	if !dateI.IsZero() && !dateJ.IsZero() {
		if !dateI.Equal(dateJ) {
			return dateI.Before(dateJ)
		}
		return minutes(i.Time) < minutes(j.Time)
	}

	// If only one date is valid, put the valid one first
	if !dateI.IsZero() {
		return true
	}
	return false
}

// minutes returns minutes past midnight, with unknown times after any known one
func minutes(timeText string) int {
	hour, minute, ok := match.ParseClock(timeText)
	if !ok {
		return 24 * 60
	}
	return hour*60 + minute
}
