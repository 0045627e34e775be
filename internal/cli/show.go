package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pfrederiksen/mat-schedule/internal/match"
	"github.com/spf13/cobra"
)

var (
	flagSection string
	flagSort    string
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored data file as a table",
		Args:  cobra.NoArgs,
		RunE:  runShow,
	}
	cmd.Flags().StringVar(&flagSection, "section", "schedule", "Section to show: schedule, roster or results")
	cmd.Flags().StringVar(&flagSort, "sort", "", "Sort the schedule by date or opponent (default upstream order)")
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
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

	w := cmd.OutOrStdout()
	if data.Metadata.TeamName != "" {
		fmt.Fprintf(w, "%s (team %s, season %s), updated %s\n",
			data.Metadata.TeamName, data.Metadata.TeamID, data.Metadata.SeasonID, data.Metadata.LastUpdated)
	}

	switch strings.ToLower(flagSection) {
	case "schedule":
		order := SortOrder(strings.ToLower(flagSort))
		if order != SortNone && order != SortByDate && order != SortByOpponent {
			return fmt.Errorf("invalid sort: %s (must be 'date' or 'opponent')", flagSort)
		}
		schedule := append([]match.MatchRecord(nil), data.Schedule...)
		sortMatches(schedule, order)
		renderSchedule(w, schedule)
	case "roster":
		renderRoster(w, data.Roster)
	case "results":
		renderResults(w, data.Results)
	default:
		return fmt.Errorf("invalid section: %s (must be 'schedule', 'roster' or 'results')", flagSection)
	}
	return nil
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func renderSchedule(w io.Writer, schedule []match.MatchRecord) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Date", "Opponent", "Location", "Time", "Result"})
	for i, m := range schedule {
		t.AppendRow(table.Row{i + 1, m.Date, m.Opponent, m.Location, m.Time, m.Result})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d matches", len(schedule))})
	t.Render()
}

func renderRoster(w io.Writer, roster []match.RosterEntry) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Name", "Weight", "Grade", "Record"})
	for _, r := range roster {
		t.AppendRow(table.Row{r.Name, r.WeightClass, r.Grade, r.Record})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d wrestlers", len(roster))})
	t.Render()
}

func renderResults(w io.Writer, results []match.ResultEntry) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Date", "Opponent", "Score", "Result", "Location"})
	for _, r := range results {
		t.AppendRow(table.Row{r.Date, r.Opponent, r.Score, r.Result, r.Location})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d results", len(results))})
	t.Render()
}
