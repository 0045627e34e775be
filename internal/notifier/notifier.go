package notifier

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pfrederiksen/mat-schedule/internal/match"
)

// MaxTweetLength is the Twitter character limit
const MaxTweetLength = 280

// Notifier defines the interface for announcing schedule additions
type Notifier interface {
	// Notify posts one announcement per match
	Notify(matches []match.MatchRecord) error
}

// FormatTweet formats a newly scheduled match as a tweet of at most
// MaxTweetLength characters
func FormatTweet(m match.MatchRecord, teamName string) string {
	var b strings.Builder

	if teamName != "" {
		fmt.Fprintf(&b, "🤼 New on the %s wrestling schedule!\n\n", teamName)
	} else {
		b.WriteString("🤼 New wrestling match scheduled!\n\n")
	}

	fmt.Fprintf(&b, "🆚 %s\n", m.Opponent)

	when := m.Date
	if m.Time != "" && m.Time != match.Placeholder {
		when += " at " + m.Time
	}
	if when != "" {
		fmt.Fprintf(&b, "📅 %s\n", when)
	}

	if m.Location != "" && m.Location != match.Placeholder {
		fmt.Fprintf(&b, "📍 %s\n", m.Location)
	}

	b.WriteString("\n#Wrestling")

	return truncate(b.String(), MaxTweetLength)
}

// truncate shortens s to max characters, ending with an ellipsis
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
