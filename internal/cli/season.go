package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pfrederiksen/mat-schedule/internal/config"
	"github.com/spf13/cobra"
)

var flagMakeCurrent bool

func newSeasonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "season",
		Short: "Manage the seasons in the config file",
	}

	set := &cobra.Command{
		Use:   "set NAME",
		Short: "Add or update a season, e.g. season set 2026-27 --team-id 123 --season-id 456 --current",
		Long: `Add or update a season in the config file.

Both IDs appear in the LoadBalance.jsp URL of the team's page on
trackwrestling.com: seasonId=<season-id> and teamId=<team-id>.`,
		Args: cobra.ExactArgs(1),
		RunE: runSeasonSet,
	}
	set.Flags().BoolVar(&flagMakeCurrent, "current", false, "Make this the current season")

	list := &cobra.Command{
		Use:   "list",
		Short: "List configured seasons",
		Args:  cobra.NoArgs,
		RunE:  runSeasonList,
	}

	cmd.AddCommand(set, list)
	return cmd
}

func runSeasonSet(cmd *cobra.Command, args []string) error {
	if flagTeamID == "" || flagSeasonID == "" {
		return fmt.Errorf("--team-id and --season-id are required")
	}

	path := config.ResolvePath(flagConfig)
	cfg, err := config.SetSeason(path, args[0], config.Season{
		TeamID:   flagTeamID,
		SeasonID: flagSeasonID,
	}, flagMakeCurrent)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved season %s to %s (current season: %s)\n", args[0], path, cfg.CurrentSeason)
	return nil
}

func runSeasonList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	t := newTable(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Season", "Team ID", "Season ID", "Current"})
	for _, name := range cfg.SeasonNames() {
		s := cfg.Seasons[name]
		current := ""
		if name == cfg.CurrentSeason {
			current = "*"
		}
		t.AppendRow(table.Row{name, s.TeamID, s.SeasonID, current})
	}
	t.Render()
	return nil
}
