package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pfrederiksen/mat-schedule/internal/blob"
)

// ErrMalformedRow marks a row that cannot be turned into a record
var ErrMalformedRow = errors.New("malformed row")

// FieldMap holds the positional offsets of schedule blob rows
type FieldMap struct {
	Event     int `json:"event"`      // event name or description, opponent fallback
	Date      int `json:"date"`       // YYYYMMDD
	Time      int `json:"time"`       // HHMM, 24-hour
	HomeAway  int `json:"home_away"`  // "H" for home
	Venue     int `json:"venue"`      // away venue name
	Opponent  int `json:"opponent"`   // opponent team name
	MinLength int `json:"min_length"` // shorter rows are skipped
}

// DefaultFieldMap is the schedule row layout observed on TeamSchedule.jsp
func DefaultFieldMap() FieldMap {
	return FieldMap{
		Event:     2,
		Date:      3,
		Time:      4,
		HomeAway:  12,
		Venue:     16,
		Opponent:  19,
		MinLength: 10,
	}
}

// Validate rejects negative offsets
func (f FieldMap) Validate() error {
	return checkOffsets("schedule", []namedOffset{
		{"event", f.Event}, {"date", f.Date}, {"time", f.Time},
		{"home_away", f.HomeAway}, {"venue", f.Venue}, {"opponent", f.Opponent},
		{"min_length", f.MinLength},
	})
}

// RosterFieldMap holds the positional offsets of roster blob rows
type RosterFieldMap struct {
	LastName    int `json:"last_name"`
	FirstName   int `json:"first_name"`
	WeightClass int `json:"weight_class"`
	Grade       int `json:"grade"`
	MinLength   int `json:"min_length"`
}

// DefaultRosterFieldMap is the roster row layout returned by getTeamRoster
func DefaultRosterFieldMap() RosterFieldMap {
	return RosterFieldMap{
		LastName:    1,
		FirstName:   2,
		WeightClass: 5,
		Grade:       11,
		MinLength:   3,
	}
}

// Validate rejects negative offsets
func (f RosterFieldMap) Validate() error {
	return checkOffsets("roster", []namedOffset{
		{"last_name", f.LastName}, {"first_name", f.FirstName},
		{"weight_class", f.WeightClass}, {"grade", f.Grade},
		{"min_length", f.MinLength},
	})
}

type namedOffset struct {
	name   string
	offset int
}

func checkOffsets(kind string, offsets []namedOffset) error {
	for _, o := range offsets {
		if o.offset < 0 {
			return fmt.Errorf("%s field %s has negative offset %d", kind, o.name, o.offset)
		}
	}
	return nil
}

// field reads position idx of row as trimmed text.
// Positions past the end of the row read as empty.
func field(row blob.Row, idx int) (string, error) {
	if idx < 0 || idx >= len(row) {
		return "", nil
	}

	switch v := row[idx].(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: field %d has unsupported type %T", ErrMalformedRow, idx, v)
	}
}

// fieldReader reads named fields from one row and keeps the first error
type fieldReader struct {
	row blob.Row
	err error
}

func (r *fieldReader) read(name string, idx int) string {
	if r.err != nil {
		return ""
	}
	v, err := field(r.row, idx)
	if err != nil {
		r.err = fmt.Errorf("reading %s: %w", name, err)
	}
	return v
}
