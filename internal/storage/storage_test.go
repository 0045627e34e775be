package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pfrederiksen/mat-schedule/internal/match"
	"github.com/stretchr/testify/require"
)

func sampleResult() *match.ScrapeResult {
	result := match.NewScrapeResult(match.Metadata{
		TeamID:      "768996150",
		SeasonID:    "1560212138",
		LastUpdated: "2025-12-01T08:00:00Z",
		TeamName:    "Shawnee High School",
	})
	result.Schedule = []match.MatchRecord{
		{Date: "December 13, 2025", Opponent: "Cherokee & Lenape", Location: "Shawnee High School", Time: "6:00 PM", Result: "TBD"},
		{Date: "January 8, 2026", Opponent: "Saint Joseph's", Location: "TBD", Time: "TBD", Result: "TBD"},
	}
	result.Roster = []match.RosterEntry{{Name: "José Ruiz", WeightClass: "144", Grade: "10"}}
	return result
}

func TestSaveLoad(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	want := sampleResult()
	require.NoError(t, s.Save(want, ""))

	got, err := s.Load("")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	got, err := s.Load("missing.json")
	require.NoError(t, err)
	require.NotNil(t, got.Schedule)
	require.Empty(t, got.Schedule)
	require.Empty(t, got.Roster)
	require.Empty(t, got.Results)
}

func TestLoad_Corrupt(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.Path("bad.json"), []byte("{not json"), 0644))

	_, err = s.Load("bad.json")
	require.Error(t, err)
}

func TestLoad_NullSections(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.Path(""), []byte(`{"metadata":{"team_id":"1"},"schedule":null}`), 0644))

	got, err := s.Load("")
	require.NoError(t, err)
	require.Equal(t, "1", got.Metadata.TeamID)
	require.NotNil(t, got.Schedule)
	require.NotNil(t, got.Roster)
	require.NotNil(t, got.Results)
}

func TestSave_Format(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.Save(sampleResult(), "out.json"))

	data, err := os.ReadFile(filepath.Join(dir, "out.json"))
	require.NoError(t, err)
	text := string(data)

	require.Contains(t, text, `"Cherokee & Lenape"`)
	require.Contains(t, text, `"Saint Joseph's"`)
	require.Contains(t, text, "José Ruiz")
	require.Contains(t, text, "\n  \"metadata\": {")
	require.Contains(t, text, `"results": []`)

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestSave_EmptySectionsEncodeAsArrays(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	result := &match.ScrapeResult{Metadata: match.Metadata{TeamID: "1"}}
	require.NoError(t, s.Save(result, ""))

	data, err := os.ReadFile(s.Path(""))
	require.NoError(t, err)
	require.False(t, strings.Contains(string(data), "null"))
}

func TestNew_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := New("~/mat-schedule")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "mat-schedule"), s.Dir())

	info, err := os.Stat(s.Dir())
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
