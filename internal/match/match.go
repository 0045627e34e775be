package match

import (
	"crypto/sha1"
	"fmt"
	"strings"
)

// Placeholder is used for any schedule value that is not known yet
const Placeholder = "TBD"

// MatchRecord is one normalized schedule entry.
// Every field is always present in JSON output.
type MatchRecord struct {
	Date     string `json:"date"`
	Opponent string `json:"opponent"`
	Location string `json:"location"`
	Time     string `json:"time"`
	Result   string `json:"result"`
}

// RosterEntry is one wrestler on the team roster
type RosterEntry struct {
	Name        string `json:"name"`
	WeightClass string `json:"weight_class"`
	Grade       string `json:"grade"`
	Record      string `json:"record"`
}

// ResultEntry is one completed dual or tournament result
type ResultEntry struct {
	Date     string `json:"date"`
	Opponent string `json:"opponent"`
	Score    string `json:"score"`
	Result   string `json:"result"`
	Location string `json:"location"`
}

// Metadata describes where and when a ScrapeResult was produced
type Metadata struct {
	TeamID      string `json:"team_id"`
	SeasonID    string `json:"season_id"`
	Season      string `json:"season,omitempty"`
	LastUpdated string `json:"last_updated"`
	TeamName    string `json:"team_name"`
	Source      string `json:"source,omitempty"` // fetch strategy that produced the data
}

// ScrapeResult is the document consumed by the team site
type ScrapeResult struct {
	Metadata Metadata      `json:"metadata"`
	Roster   []RosterEntry `json:"roster"`
	Schedule []MatchRecord `json:"schedule"`
	Results  []ResultEntry `json:"results"`
}

// NewScrapeResult creates an empty result whose sections encode as [] rather than null
func NewScrapeResult(meta Metadata) *ScrapeResult {
	return &ScrapeResult{
		Metadata: meta,
		Roster:   make([]RosterEntry, 0),
		Schedule: make([]MatchRecord, 0),
		Results:  make([]ResultEntry, 0),
	}
}

// EnsureSections replaces nil sections with empty slices
func (r *ScrapeResult) EnsureSections() {
	if r.Roster == nil {
		r.Roster = make([]RosterEntry, 0)
	}
	if r.Schedule == nil {
		r.Schedule = make([]MatchRecord, 0)
	}
	if r.Results == nil {
		r.Results = make([]ResultEntry, 0)
	}
}

// Key returns the identity of a match used for diffing.
// Two records with the same date and opponent are the same match.
func Key(m MatchRecord) string {
	return strings.ToLower(strings.TrimSpace(m.Date)) + "|" + strings.ToLower(strings.TrimSpace(m.Opponent))
}

// GenerateID creates a deterministic ID for a match based on its key
func GenerateID(m MatchRecord) string {
	h := sha1.New()
	h.Write([]byte(Key(m)))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// IsHome reports whether the match is hosted at the given home venue
func (m MatchRecord) IsHome(homeVenue string) bool {
	return homeVenue != "" && strings.EqualFold(m.Location, homeVenue)
}
