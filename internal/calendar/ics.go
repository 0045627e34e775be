package calendar

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zone data for hosts without a system database

	"github.com/pfrederiksen/mat-schedule/internal/match"
)

const (
	// DefaultTimeZone is where match times on the site are expressed
	DefaultTimeZone = "America/New_York"
	// MatchDuration is the calendar slot given to a timed match
	MatchDuration = 2 * time.Hour
)

// Options controls calendar generation
type Options struct {
	TeamName string
	Location *time.Location // zone of the schedule's clock times
	Now      func() time.Time
}

// GenerateICS generates an iCalendar (.ics) document with one event per match.
// Matches with a clock time get a two hour slot; matches with a TBD time
// become all-day events. Matches whose date cannot be parsed are left out.
func GenerateICS(records []match.MatchRecord, teamName string) string {
	loc, err := time.LoadLocation(DefaultTimeZone)
	if err != nil {
		loc = time.UTC
	}
	return Generate(records, Options{TeamName: teamName, Location: loc})
}

// Generate is GenerateICS with explicit options
func Generate(records []match.MatchRecord, opts Options) string {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	var ics strings.Builder
	calName := "Wrestling Schedule"
	if opts.TeamName != "" {
		calName = opts.TeamName + " Wrestling"
	}

	writeLine(&ics, "BEGIN:VCALENDAR")
	writeLine(&ics, "VERSION:2.0")
	writeLine(&ics, "PRODID:-//mat-schedule//mat-schedule//EN")
	writeLine(&ics, "CALSCALE:GREGORIAN")
	writeLine(&ics, "METHOD:PUBLISH")
	writeLine(&ics, "X-WR-CALNAME:"+escapeICS(calName))

	stamp := formatICSTime(opts.Now())
	for _, m := range records {
		writeEvent(&ics, m, opts, stamp)
	}

	writeLine(&ics, "END:VCALENDAR")
	return ics.String()
}

func writeEvent(ics *strings.Builder, m match.MatchRecord, opts Options, stamp string) {
	day := match.ParseDate(m.Date)
	if day.IsZero() {
		return
	}

	writeLine(ics, "BEGIN:VEVENT")
	writeLine(ics, fmt.Sprintf("UID:%s@mat-schedule", match.GenerateID(m)))
	writeLine(ics, "DTSTAMP:"+stamp)

	if hour, minute, ok := match.ParseClock(m.Time); ok {
		start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, opts.Location)
		writeLine(ics, "DTSTART:"+formatICSTime(start))
		writeLine(ics, "DTEND:"+formatICSTime(start.Add(MatchDuration)))
	} else {
		writeLine(ics, "DTSTART;VALUE=DATE:"+day.Format("20060102"))
		writeLine(ics, "DTEND;VALUE=DATE:"+day.AddDate(0, 0, 1).Format("20060102"))
	}

	writeLine(ics, "SUMMARY:"+escapeICS(summary(m, opts.TeamName)))

	var details []string
	details = append(details, "Opponent: "+m.Opponent)
	if m.Time != "" {
		details = append(details, "Time: "+m.Time)
	}
	if m.Result != "" && m.Result != match.Placeholder {
		details = append(details, "Result: "+m.Result)
	}
	writeLine(ics, "DESCRIPTION:"+escapeICS(strings.Join(details, "\n")))

	if m.Location != "" && m.Location != match.Placeholder {
		writeLine(ics, "LOCATION:"+escapeICS(m.Location))
	}

	writeLine(ics, "STATUS:CONFIRMED")
	writeLine(ics, "TRANSP:OPAQUE")
	writeLine(ics, "END:VEVENT")
}

func summary(m match.MatchRecord, teamName string) string {
	if teamName == "" {
		return "Wrestling vs " + m.Opponent
	}
	return fmt.Sprintf("%s vs %s", teamName, m.Opponent)
}

// writeLine writes one content line, folded at 75 octets per RFC 5545
func writeLine(ics *strings.Builder, line string) {
	limit := 75
	for len(line) > limit {
		cut := limit
		// never split a UTF-8 sequence
		for cut > 0 && line[cut]&0xC0 == 0x80 {
			cut--
		}
		ics.WriteString(line[:cut])
		ics.WriteString("\r\n ")
		line = line[cut:]
		// continuation lines start with a space
		limit = 74
	}
	ics.WriteString(line)
	ics.WriteString("\r\n")
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
