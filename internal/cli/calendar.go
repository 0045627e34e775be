package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/mat-schedule/internal/calendar"
	"github.com/pfrederiksen/mat-schedule/internal/logger"
	"github.com/spf13/cobra"
)

var (
	flagCalendarOut string
	flagTimeZone    string
)

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Export the stored schedule as an iCalendar file",
		Args:  cobra.NoArgs,
		RunE:  runCalendar,
	}
	cmd.Flags().StringVar(&flagCalendarOut, "out", "-", "Output file, or - for stdout")
	cmd.Flags().StringVar(&flagTimeZone, "tz", calendar.DefaultTimeZone, "Time zone of the schedule's match times")
	return cmd
}

func runCalendar(cmd *cobra.Command, args []string) error {
	loc, err := time.LoadLocation(flagTimeZone)
	if err != nil {
		return fmt.Errorf("invalid time zone %q: %w", flagTimeZone, err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStorage(cfg)
	if err != nil {
		return err
	}
	data, err := store.Load(cfg.OutputFile)
	if err != nil {
		return err
	}

	teamName := data.Metadata.TeamName
	if teamName == "" {
		teamName = cfg.TeamName
	}
	ics := calendar.Generate(data.Schedule, calendar.Options{TeamName: teamName, Location: loc})

	if flagCalendarOut == "-" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), ics)
		return err
	}
	if err := os.WriteFile(flagCalendarOut, []byte(ics), 0644); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	logger.Info("wrote calendar", logger.Fields{
		"path":    flagCalendarOut,
		"matches": len(data.Schedule),
	})
	return nil
}
