package normalize

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/mat-schedule/internal/blob"
	"github.com/pfrederiksen/mat-schedule/internal/match"
)

// RosterNormalizer turns roster blob rows into roster entries
type RosterNormalizer struct {
	Fields RosterFieldMap
}

// NewRoster creates a RosterNormalizer using the default field layout
func NewRoster() *RosterNormalizer {
	return &RosterNormalizer{Fields: DefaultRosterFieldMap()}
}

// Row maps one roster row to a RosterEntry. Rows without a name are malformed.
func (n *RosterNormalizer) Row(row blob.Row) (match.RosterEntry, error) {
	if len(row) == 0 || len(row) < n.Fields.MinLength {
		return match.RosterEntry{}, fmt.Errorf("%w: %d fields, need %d", ErrMalformedRow, len(row), n.Fields.MinLength)
	}

	r := fieldReader{row: row}
	last := r.read("last_name", n.Fields.LastName)
	first := r.read("first_name", n.Fields.FirstName)
	weight := r.read("weight_class", n.Fields.WeightClass)
	grade := r.read("grade", n.Fields.Grade)
	if r.err != nil {
		return match.RosterEntry{}, r.err
	}

	name := strings.TrimSpace(first + " " + last)
	if name == "" {
		return match.RosterEntry{}, fmt.Errorf("%w: empty name", ErrMalformedRow)
	}

	return match.RosterEntry{
		Name:        name,
		WeightClass: weight,
		Grade:       grade,
	}, nil
}

// Page runs the roster pipeline over a fetched page. It never fails.
func (n *RosterNormalizer) Page(raw string) Batch[match.RosterEntry] {
	return runPage(raw, "roster", n.Row, func(match.RosterEntry) bool { return true })
}
