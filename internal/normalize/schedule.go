package normalize

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/mat-schedule/internal/blob"
	"github.com/pfrederiksen/mat-schedule/internal/match"
)

// HomeFlag marks a home event in the home/away field
const HomeFlag = "H"

// Normalizer turns schedule blob rows into match records
type Normalizer struct {
	Fields    FieldMap
	HomeVenue string // location used for every home event
}

// New creates a Normalizer using the default field layout
func New(homeVenue string) *Normalizer {
	return &Normalizer{
		Fields:    DefaultFieldMap(),
		HomeVenue: homeVenue,
	}
}

// Row maps one blob row to a MatchRecord, or returns an error wrapping
// ErrMalformedRow when the row must be skipped.
func (n *Normalizer) Row(row blob.Row) (match.MatchRecord, error) {
	minLength := n.Fields.MinLength
	if len(row) == 0 || len(row) < minLength {
		return match.MatchRecord{}, fmt.Errorf("%w: %d fields, need %d", ErrMalformedRow, len(row), minLength)
	}

	r := fieldReader{row: row}
	event := r.read("event", n.Fields.Event)
	date := r.read("date", n.Fields.Date)
	clock := r.read("time", n.Fields.Time)
	flag := r.read("home_away", n.Fields.HomeAway)
	venue := r.read("venue", n.Fields.Venue)
	opponent := r.read("opponent", n.Fields.Opponent)
	if r.err != nil {
		return match.MatchRecord{}, r.err
	}

	if opponent == "" {
		opponent = event
	}

	return match.MatchRecord{
		Date:     match.FormatDate(date),
		Opponent: opponent,
		Location: n.location(flag, venue),
		Time:     match.FormatTime(clock),
		Result:   match.Placeholder,
	}, nil
}

// location resolves the home/away flag. Home events always use the configured
// venue, regardless of what the venue field holds. Without one they are TBD.
func (n *Normalizer) location(flag, venue string) string {
	if strings.EqualFold(flag, HomeFlag) {
		if n.HomeVenue == "" {
			return match.Placeholder
		}
		return n.HomeVenue
	}
	if venue != "" {
		return venue
	}
	return match.Placeholder
}
