package scraper

import (
	"context"
	"errors"
	"time"

	"github.com/pfrederiksen/mat-schedule/internal/logger"
	"github.com/pfrederiksen/mat-schedule/internal/match"
	"github.com/pfrederiksen/mat-schedule/internal/normalize"
)

// Config describes the team a Scraper collects data for
type Config struct {
	Target   Target
	TeamName string
	Season   string
	Schedule *normalize.Normalizer
	Roster   *normalize.RosterNormalizer
}

// Scraper collects the roster, schedule and results of one team
type Scraper struct {
	fetcher  Fetcher
	target   Target
	teamName string
	season   string
	schedule *normalize.Normalizer
	roster   *normalize.RosterNormalizer
	now      func() time.Time
}

// New creates a Scraper reading pages through fetcher
func New(fetcher Fetcher, cfg Config) *Scraper {
	s := &Scraper{
		fetcher:  fetcher,
		target:   cfg.Target,
		teamName: cfg.TeamName,
		season:   cfg.Season,
		schedule: cfg.Schedule,
		roster:   cfg.Roster,
		now:      time.Now,
	}
	if s.schedule == nil {
		s.schedule = normalize.New(cfg.TeamName)
	}
	if s.roster == nil {
		s.roster = normalize.NewRoster()
	}
	return s
}

// fetch retrieves a page, logging and counting failures. ok is false when
// no body could be obtained.
func (s *Scraper) fetch(ctx context.Context, page Page) (body string, ok bool) {
	start := time.Now()
	body, err := s.fetcher.Fetch(ctx, page)
	logger.RecordTiming("fetch."+page.String(), time.Since(start))

	if errors.Is(err, ErrUnsupportedPage) {
		logger.Info("page not available over transport", logger.Fields{
			"page":      page.String(),
			"transport": s.fetcher.Name(),
		})
		return "", false
	}
	if err != nil {
		logger.IncrCounter("fetch.errors")
		logger.Error("failed to fetch page", logger.Fields{
			"page":      page.String(),
			"transport": s.fetcher.Name(),
		}, err)
		return "", false
	}

	logger.Debug("fetched page", logger.Fields{
		"page":  page.String(),
		"bytes": len(body),
	})
	return body, true
}

// ScrapeSchedule returns the team schedule. It never fails; a missing or
// unreadable page yields an empty schedule.
func (s *Scraper) ScrapeSchedule(ctx context.Context) []match.MatchRecord {
	body, ok := s.fetch(ctx, PageSchedule)
	if !ok {
		return make([]match.MatchRecord, 0)
	}
	return s.schedule.Page(body).Records
}

// ScrapeRoster returns the team roster from the roster data blob, falling
// back to HTML tables when the page has none
func (s *Scraper) ScrapeRoster(ctx context.Context) []match.RosterEntry {
	body, ok := s.fetch(ctx, PageRoster)
	if !ok {
		return make([]match.RosterEntry, 0)
	}

	batch := s.roster.Page(body)
	if batch.Outcome == normalize.OutcomeOK {
		return batch.Records
	}

	roster, err := ParseRosterTable(body)
	if err != nil {
		logger.Warn("failed to parse roster table", logger.Fields{"error": err.Error()})
		return make([]match.RosterEntry, 0)
	}
	logger.Info("parsed roster table", logger.Fields{"wrestlers": len(roster)})
	return roster
}

// ScrapeResults returns completed results parsed from the results page tables
func (s *Scraper) ScrapeResults(ctx context.Context) []match.ResultEntry {
	body, ok := s.fetch(ctx, PageResults)
	if !ok {
		return make([]match.ResultEntry, 0)
	}

	results, err := ParseResultsTable(body)
	if err != nil {
		logger.Warn("failed to parse results table", logger.Fields{"error": err.Error()})
		return make([]match.ResultEntry, 0)
	}
	return results
}

// ScrapeAll collects every section into one ScrapeResult
func (s *Scraper) ScrapeAll(ctx context.Context) *match.ScrapeResult {
	result := match.NewScrapeResult(match.Metadata{
		TeamID:      s.target.TeamID,
		SeasonID:    s.target.SeasonID,
		Season:      s.season,
		LastUpdated: s.now().Format(time.RFC3339),
		TeamName:    s.teamName,
		Source:      s.fetcher.Name(),
	})

	for _, page := range Pages {
		switch page {
		case PageRoster:
			result.Roster = s.ScrapeRoster(ctx)
		case PageSchedule:
			result.Schedule = s.ScrapeSchedule(ctx)
		case PageResults:
			result.Results = s.ScrapeResults(ctx)
		}
	}

	logger.Info("scrape complete", logger.Fields{
		"team_id":  s.target.TeamID,
		"roster":   len(result.Roster),
		"schedule": len(result.Schedule),
		"results":  len(result.Results),
	})

	return result
}
