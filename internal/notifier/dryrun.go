package notifier

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/pfrederiksen/mat-schedule/internal/match"
)

// DryRunNotifier prints what would be tweeted without actually posting
type DryRunNotifier struct {
	out      io.Writer
	teamName string
}

// NewDryRunNotifier creates a dry-run notifier writing to out, or stdout when out is nil
func NewDryRunNotifier(out io.Writer, teamName string) *DryRunNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunNotifier{out: out, teamName: teamName}
}

// Notify prints the tweets that would be posted
func (n *DryRunNotifier) Notify(matches []match.MatchRecord) error {
	for i, m := range matches {
		tweet := FormatTweet(m, n.teamName)
		fmt.Fprintf(n.out, "--- Tweet %d/%d ---\n", i+1, len(matches))
		fmt.Fprintln(n.out, tweet)
		fmt.Fprintf(n.out, "\n(Length: %d characters)\n\n", utf8.RuneCountInString(tweet))
	}
	return nil
}
