package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pfrederiksen/mat-schedule/internal/normalize"
	"github.com/pfrederiksen/mat-schedule/internal/scraper"
	"github.com/spf13/cobra"
)

var flagParseSection string

// parseOutput is what the parse command prints
type parseOutput struct {
	File    string            `json:"file"`
	Section string            `json:"section"`
	Outcome normalize.Outcome `json:"outcome"`
	Skipped int               `json:"skipped"`
	Count   int               `json:"count"`
	Records any               `json:"records"`
}

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Run the page pipeline on a saved HTML or AJAX response",
		Long: `Run the locate, parse and normalize pipeline on a page saved to disk and
print the records it yields. Useful when the site changes its markup.`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	cmd.Flags().StringVar(&flagParseSection, "section", "schedule", "Page type: schedule, roster or results")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading page: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := parseOutput{File: args[0], Section: strings.ToLower(flagParseSection)}
	switch out.Section {
	case "schedule":
		n := &normalize.Normalizer{Fields: cfg.ScheduleFields, HomeVenue: cfg.HomeVenue}
		batch := n.Page(string(raw))
		out.Outcome, out.Skipped, out.Count, out.Records = batch.Outcome, batch.Skipped, batch.Count(), batch.Records
	case "roster":
		n := &normalize.RosterNormalizer{Fields: cfg.RosterFields}
		batch := n.Page(string(raw))
		out.Outcome, out.Skipped, out.Count, out.Records = batch.Outcome, batch.Skipped, batch.Count(), batch.Records
	case "results":
		results, err := scraper.ParseResultsTable(string(raw))
		if err != nil {
			return err
		}
		out.Outcome, out.Count, out.Records = normalize.OutcomeOK, len(results), results
	default:
		return fmt.Errorf("invalid section: %s (must be 'schedule', 'roster' or 'results')", flagParseSection)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
