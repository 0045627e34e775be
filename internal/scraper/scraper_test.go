package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pfrederiksen/mat-schedule/internal/match"
	"github.com/pfrederiksen/mat-schedule/internal/normalize"
)

// stubFetcher serves canned bodies per page
type stubFetcher struct {
	bodies map[Page]string
	errs   map[Page]error
}

func (f *stubFetcher) Name() string { return "stub" }

func (f *stubFetcher) Fetch(ctx context.Context, page Page) (string, error) {
	if err, ok := f.errs[page]; ok {
		return "", err
	}
	return f.bodies[page], nil
}

func newTestScraper(f Fetcher) *Scraper {
	s := New(f, Config{
		Target:   testTarget,
		TeamName: "Shawnee High School",
		Season:   "2025-26",
		Schedule: normalize.New("Shawnee High School"),
	})
	s.now = func() time.Time { return time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC) }
	return s
}

func TestScrapeAll(t *testing.T) {
	f := &stubFetcher{
		bodies: map[Page]string{
			PageSchedule: schedulePage,
			PageRoster:   `"[[1,\"Smith\",\"Alex\",0,0,\"126\",0,0,0,0,0,\"11\"]]"`,
			PageResults:  `<table><tr><td>12/13/2025</td><td>Cherokee</td><td>42-30</td><td>W</td></tr></table>`,
		},
	}

	got := newTestScraper(f).ScrapeAll(context.Background())

	want := &match.ScrapeResult{
		Metadata: match.Metadata{
			TeamID:      "768996150",
			SeasonID:    "1560212138",
			Season:      "2025-26",
			LastUpdated: "2025-12-01T08:00:00Z",
			TeamName:    "Shawnee High School",
			Source:      "stub",
		},
		Roster: []match.RosterEntry{
			{Name: "Alex Smith", WeightClass: "126", Grade: "11"},
		},
		Schedule: []match.MatchRecord{
			{Date: "December 13, 2025", Opponent: "Cherokee", Location: "Shawnee High School", Time: "6:00 PM", Result: "TBD"},
		},
		Results: []match.ResultEntry{
			{Date: "12/13/2025", Opponent: "Cherokee", Score: "42-30", Result: "W"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ScrapeAll() mismatch (-want +got):\n%s", diff)
	}
}

func TestScrapeSchedule_DefaultNormalizerUsesTeamName(t *testing.T) {
	f := &stubFetcher{bodies: map[Page]string{PageSchedule: schedulePage}}
	s := New(f, Config{Target: testTarget, TeamName: "Cherry Hill East"})

	got := s.ScrapeSchedule(context.Background())
	if len(got) != 1 || got[0].Location != "Cherry Hill East" {
		t.Errorf("ScrapeSchedule() = %+v, want home match at Cherry Hill East", got)
	}
}

func TestScrapeAll_FetchErrorsYieldEmptySections(t *testing.T) {
	f := &stubFetcher{
		errs: map[Page]error{
			PageSchedule: ErrUnexpectedStatus,
			PageRoster:   errors.New("connection refused"),
			PageResults:  ErrUnsupportedPage,
		},
	}

	got := newTestScraper(f).ScrapeAll(context.Background())

	if got.Schedule == nil || len(got.Schedule) != 0 {
		t.Errorf("Schedule = %v, want empty", got.Schedule)
	}
	if got.Roster == nil || len(got.Roster) != 0 {
		t.Errorf("Roster = %v, want empty", got.Roster)
	}
	if got.Results == nil || len(got.Results) != 0 {
		t.Errorf("Results = %v, want empty", got.Results)
	}
}

func TestScrapeRoster_TableFallback(t *testing.T) {
	f := &stubFetcher{
		bodies: map[Page]string{
			PageRoster: `<table><tr><th>Name</th><th>Weight</th></tr><tr><td>Jo Park</td><td>106</td></tr></table>`,
		},
	}

	got := newTestScraper(f).ScrapeRoster(context.Background())
	want := []match.RosterEntry{{Name: "Jo Park", WeightClass: "106"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ScrapeRoster() mismatch (-want +got):\n%s", diff)
	}
}

func TestScrapeSchedule_NoData(t *testing.T) {
	f := &stubFetcher{
		bodies: map[Page]string{PageSchedule: "<html><body>Schedule not yet posted</body></html>"},
	}

	got := newTestScraper(f).ScrapeSchedule(context.Background())
	if got == nil || len(got) != 0 {
		t.Errorf("ScrapeSchedule() = %v, want empty", got)
	}
}
