package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/mat-schedule/internal/match"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// SectionCounts holds the size of each section of the saved data file
type SectionCounts struct {
	Roster   int `json:"roster"`
	Schedule int `json:"schedule"`
	Results  int `json:"results"`
}

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt   time.Time            `json:"checked_at"`
	Season      string               `json:"season,omitempty"`
	TeamID      string               `json:"team_id"`
	SeasonID    string               `json:"season_id"`
	Source      string               `json:"source"`
	DataFile    string               `json:"data_file"`
	Counts      SectionCounts        `json:"counts"`
	Added       []match.MatchRecord  `json:"added"`
	Removed     []match.MatchRecord  `json:"removed"`
	Changed     []*match.MatchChange `json:"changed"`
	ChangeCount int                  `json:"change_count"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	if result.Added == nil {
		result.Added = make([]match.MatchRecord, 0)
	}
	if result.Removed == nil {
		result.Removed = make([]match.MatchRecord, 0)
	}
	if result.Changed == nil {
		result.Changed = make([]*match.MatchChange, 0)
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	fmt.Fprintf(w, "Scraped %d matches, %d wrestlers, %d results (%s)\n",
		result.Counts.Schedule, result.Counts.Roster, result.Counts.Results, result.Source)

	if result.ChangeCount == 0 {
		fmt.Fprintln(w, "No schedule changes.")
		return nil
	}

	fmt.Fprintln(w)
	for _, m := range result.Added {
		fmt.Fprintf(w, "NEW: %s\n", describeMatch(m))
		if verbose {
			fmt.Fprintf(w, "     ID: %s\n", match.GenerateID(m))
		}
	}
	for _, m := range result.Removed {
		fmt.Fprintf(w, "REMOVED: %s\n", describeMatch(m))
		if verbose {
			fmt.Fprintf(w, "     ID: %s\n", match.GenerateID(m))
		}
	}
	for _, c := range result.Changed {
		fmt.Fprintf(w, "CHANGED: %s vs %s: %s %s -> %s\n", c.Date, c.Opponent, c.ChangeType, c.OldValue, c.NewValue)
		if verbose {
			fmt.Fprintf(w, "     ID: %s\n", c.MatchID)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d new, %d removed, %d changed\n", len(result.Added), len(result.Removed), len(result.Changed))
	if verbose {
		fmt.Fprintf(w, "Data file: %s\n", result.DataFile)
	}

	return nil
}

func describeMatch(m match.MatchRecord) string {
	s := fmt.Sprintf("%s vs %s", m.Date, m.Opponent)
	if m.Time != "" && m.Time != match.Placeholder {
		s += " at " + m.Time
	}
	if m.Location != "" && m.Location != match.Placeholder {
		s += " (" + m.Location + ")"
	}
	return s
}
