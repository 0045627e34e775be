package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pfrederiksen/mat-schedule/internal/match"
	"github.com/pfrederiksen/mat-schedule/internal/notifier"
)

var (
	changesFile = flag.String("changes-file", "", "Path to scrape --format json output (or read from stdin)")
	dryRun      = flag.Bool("dry-run", false, "Print tweets without posting")
	maxTweets   = flag.Int("max-tweets", 10, "Maximum number of tweets to post")
	teamName    = flag.String("team-name", "Shawnee High School", "Team name used in tweets")
	homeVenue   = flag.String("home-venue", "", "Only tweet matches hosted at this venue")
)

func main() {
	flag.Parse()

	// Read scrape output from file or stdin
	var reader io.Reader
	if *changesFile != "" {
		f, err := os.Open(*changesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening changes file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		reader = f
	} else {
		reader = os.Stdin
	}

	var result struct {
		Added []match.MatchRecord `json:"added"`
	}

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&result); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	if len(result.Added) == 0 {
		fmt.Println("No new matches to tweet")
		os.Exit(0)
	}

	matches := result.Added
	if *homeVenue != "" {
		filtered := make([]match.MatchRecord, 0)
		for _, m := range matches {
			if m.IsHome(*homeVenue) {
				filtered = append(filtered, m)
			}
		}
		matches = filtered
	}

	if len(matches) > *maxTweets {
		matches = matches[:*maxTweets]
	}

	if len(matches) == 0 {
		fmt.Println("No matches meet the criteria")
		os.Exit(0)
	}

	var tw notifier.Notifier
	if *dryRun {
		tw = notifier.NewDryRunNotifier(os.Stdout, *teamName)
		fmt.Printf("DRY RUN MODE - Would tweet %d matches:\n\n", len(matches))
	} else {
		client, err := notifier.NewTwitterNotifier(*teamName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing Twitter client: %v\n", err)
			os.Exit(1)
		}
		tw = client
	}

	if err := tw.Notify(matches); err != nil {
		fmt.Fprintf(os.Stderr, "Error posting tweets: %v\n", err)
		os.Exit(1)
	}

	if !*dryRun {
		fmt.Printf("Successfully posted %d tweets\n", len(matches))
	}
}
