package match

import "time"

// Change types reported by Diff
const (
	ChangeTime     = "time"
	ChangeLocation = "location"
	ChangeResult   = "result"
)

// MatchChange represents a field change detected on a match that exists in both runs
type MatchChange struct {
	MatchID    string    `json:"match_id"`
	Date       string    `json:"date"`
	Opponent   string    `json:"opponent"`
	ChangeType string    `json:"change_type"` // "time", "location", "result"
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
	DetectedAt time.Time `json:"detected_at"`
}

// DiffResult contains the results of comparing two schedules
type DiffResult struct {
	Added   []MatchRecord  `json:"added"`
	Removed []MatchRecord  `json:"removed"`
	Changed []*MatchChange `json:"changed"`
}

// HasChanges reports whether anything differs between the two schedules
func (d *DiffResult) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Changed) > 0
}

// Diff compares the current schedule against the previous one.
// Added and Removed keep the order of current and previous respectively.
// Matches sharing a key are paired by occurrence, so the second listing of
// the same opponent on the same day only matches a second previous listing.
func Diff(previous, current []MatchRecord) *DiffResult {
	result := &DiffResult{
		Added:   make([]MatchRecord, 0),
		Removed: make([]MatchRecord, 0),
		Changed: make([]*MatchChange, 0),
	}

	pending := make(map[string][]int, len(previous))
	for i, m := range previous {
		key := Key(m)
		pending[key] = append(pending[key], i)
	}

	matched := make([]bool, len(previous))
	for _, m := range current {
		key := Key(m)
		queue := pending[key]
		if len(queue) == 0 {
			result.Added = append(result.Added, m)
			continue
		}
		idx := queue[0]
		pending[key] = queue[1:]
		matched[idx] = true
		result.Changed = append(result.Changed, DetectChanges(previous[idx], m)...)
	}

	for i, m := range previous {
		if !matched[i] {
			result.Removed = append(result.Removed, m)
		}
	}

	return result
}

// DetectChanges compares two versions of the same match and returns detected changes
func DetectChanges(previous, current MatchRecord) []*MatchChange {
	var changes []*MatchChange
	now := time.Now().UTC()
	id := GenerateID(current)

	add := func(changeType, oldValue, newValue string) {
		if oldValue == newValue {
			return
		}
		changes = append(changes, &MatchChange{
			MatchID:    id,
			Date:       current.Date,
			Opponent:   current.Opponent,
			ChangeType: changeType,
			OldValue:   oldValue,
			NewValue:   newValue,
			DetectedAt: now,
		})
	}

	add(ChangeTime, previous.Time, current.Time)
	add(ChangeLocation, previous.Location, current.Location)
	add(ChangeResult, previous.Result, current.Result)

	return changes
}
