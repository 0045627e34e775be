package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/pfrederiksen/mat-schedule/internal/config"
	"github.com/pfrederiksen/mat-schedule/internal/logger"
	"github.com/pfrederiksen/mat-schedule/internal/scraper"
	"github.com/pfrederiksen/mat-schedule/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitChanged = 2
)

// exitCode ends a command with a specific status without printing an error
type exitCode int

func (e exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

var (
	flagConfig    string
	flagSeason    string
	flagTeamID    string
	flagSeasonID  string
	flagTransport string
	flagHomeVenue string
	flagDataDir   string
	flagOutput    string
	flagLogLevel  string
	flagVerbose   bool
)

// NewRootCmd creates the root command. Run without a subcommand it scrapes.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mat-schedule",
		Short: "Scrape a TrackWrestling team schedule into a JSON data file",
		Long: `A CLI tool that scrapes the roster, schedule and results of a
TrackWrestling team season and writes them to the JSON data file read by the
team website. Reports schedule changes since the last run.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogging,
		RunE:              runScrape,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "Config file (default $"+config.EnvPath+" or "+config.DefaultPath+")")
	flags.StringVar(&flagSeason, "season", "", "Season name from the config file (default current_season)")
	flags.StringVar(&flagTeamID, "team-id", "", "Override the team ID")
	flags.StringVar(&flagSeasonID, "season-id", "", "Override the season ID")
	flags.StringVar(&flagTransport, "transport", "", "Fetch strategy: http, ajax, frame or browser")
	flags.StringVar(&flagHomeVenue, "home-venue", "", "Location used for home matches")
	flags.StringVar(&flagDataDir, "data-dir", "", "Directory holding the data file")
	flags.StringVar(&flagOutput, "output", "", "Data file name inside the data directory")
	flags.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.BoolVar(&flagVerbose, "verbose", false, "Enable verbose output and debug logging")

	addScrapeFlags(cmd)

	cmd.AddCommand(
		newScrapeCmd(),
		newShowCmd(),
		newSeasonCmd(),
		newCalendarCmd(),
		newParseCmd(),
	)

	return cmd
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := logger.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
	return nil
}

// loadConfig reads the config file and applies flag overrides
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(config.ResolvePath(flagConfig))
	if err != nil {
		return cfg, err
	}

	if flagTransport != "" {
		cfg.Transport = flagTransport
	}
	if flagHomeVenue != "" {
		cfg.HomeVenue = flagHomeVenue
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagOutput != "" {
		cfg.OutputFile = flagOutput
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// resolveTarget picks the team and season to scrape. Explicit IDs win over
// the configured season; with both IDs given the season need not exist.
func resolveTarget(cfg config.Config) (string, scraper.Target, error) {
	name := flagSeason
	if name == "" {
		name = cfg.CurrentSeason
	}

	target := scraper.Target{TeamID: flagTeamID, SeasonID: flagSeasonID, GBID: cfg.GBID}
	if target.TeamID != "" && target.SeasonID != "" {
		if flagSeason == "" {
			name = ""
		}
		return name, target, nil
	}

	season, err := cfg.Season(name)
	if err != nil {
		return "", target, err
	}
	if target.TeamID == "" {
		target.TeamID = season.TeamID
	}
	if target.SeasonID == "" {
		target.SeasonID = season.SeasonID
	}
	return name, target, nil
}

func openStorage(cfg config.Config) (*storage.Storage, error) {
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	return store, nil
}

// Run executes the CLI with args and returns the process exit status
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)

	var code exitCode
	if errors.As(err, &code) {
		return int(code)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
