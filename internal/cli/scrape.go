package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/mat-schedule/internal/logger"
	"github.com/pfrederiksen/mat-schedule/internal/match"
	"github.com/pfrederiksen/mat-schedule/internal/normalize"
	"github.com/pfrederiksen/mat-schedule/internal/scraper"
	"github.com/spf13/cobra"
)

var (
	flagFormat      string
	flagFailOnEmpty bool
	flagExitCode    bool
)

func addScrapeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagFailOnEmpty, "fail-on-empty", false, "Exit 1 when the scraped schedule is empty")
	cmd.Flags().BoolVar(&flagExitCode, "exit-code", false, "Exit 2 when the schedule changed")
}

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape the team and update the data file (default command)",
		Args:  cobra.NoArgs,
		RunE:  runScrape,
	}
	addScrapeFlags(cmd)
	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unknown command %q", args[0])
	}

	// Validate format
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	seasonName, target, err := resolveTarget(cfg)
	if err != nil {
		return err
	}

	store, err := openStorage(cfg)
	if err != nil {
		return err
	}

	fetcher, err := scraper.NewFetcher(scraper.Options{
		Transport:        cfg.Transport,
		BaseURL:          cfg.BaseURL,
		Target:           target,
		UserAgent:        cfg.UserAgent,
		Timeout:          cfg.Timeout(),
		CloudflareBypass: cfg.CloudflareBypass,
		SessionID:        cfg.SessionID,
	})
	if err != nil {
		return err
	}

	logger.Info("starting scrape", logger.Fields{
		"season":    seasonName,
		"team_id":   target.TeamID,
		"season_id": target.SeasonID,
		"transport": fetcher.Name(),
	})

	sc := scraper.New(fetcher, scraper.Config{
		Target:   target,
		TeamName: cfg.TeamName,
		Season:   seasonName,
		Schedule: &normalize.Normalizer{Fields: cfg.ScheduleFields, HomeVenue: cfg.HomeVenue},
		Roster:   &normalize.RosterNormalizer{Fields: cfg.RosterFields},
	})

	previous, err := store.Load(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("loading previous data: %w", err)
	}

	result := sc.ScrapeAll(cmd.Context())
	scraped := len(result.Schedule)

	// An empty scrape usually means the site failed us, not that the season
	// was cancelled, so the stored matches are kept.
	if scraped == 0 && len(previous.Schedule) > 0 {
		logger.Warn("scrape returned no matches, keeping stored schedule", logger.Fields{
			"stored": len(previous.Schedule),
		})
		result.Schedule = previous.Schedule
	}

	diff := match.Diff(previous.Schedule, result.Schedule)

	if err := store.Save(result, cfg.OutputFile); err != nil {
		return fmt.Errorf("saving data: %w", err)
	}
	logger.Info("saved data file", logger.Fields{"path": store.Path(cfg.OutputFile)})

	out := &OutputResult{
		CheckedAt: time.Now().UTC(),
		Season:    seasonName,
		TeamID:    target.TeamID,
		SeasonID:  target.SeasonID,
		Source:    fetcher.Name(),
		DataFile:  store.Path(cfg.OutputFile),
		Counts: SectionCounts{
			Roster:   len(result.Roster),
			Schedule: len(result.Schedule),
			Results:  len(result.Results),
		},
		Added:   diff.Added,
		Removed: diff.Removed,
		Changed: diff.Changed,
	}
	out.ChangeCount = len(out.Added) + len(out.Removed) + len(out.Changed)

	if err := WriteOutput(cmd.OutOrStdout(), out, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if flagVerbose {
		counters, timings := logger.DefaultMetrics().Snapshot()
		fields := logger.Fields{}
		for name, v := range counters {
			fields[name] = v
		}
		for name, d := range timings {
			fields[name] = d.String()
		}
		logger.Debug("run metrics", fields)
	}

	if flagFailOnEmpty && scraped == 0 {
		logger.Error("scraped schedule is empty", logger.Fields{"team_id": target.TeamID}, nil)
		return exitCode(ExitError)
	}
	if flagExitCode && diff.HasChanges() {
		return exitCode(ExitChanged)
	}
	return nil
}
