package main

import (
	"fmt"
	"os"

	"github.com/pfrederiksen/mat-schedule/internal/calendar"
	"github.com/pfrederiksen/mat-schedule/internal/match"
)

func main() {
	matches := []match.MatchRecord{
		{Date: "December 13, 2025", Opponent: "Cherokee", Location: "Shawnee High School", Time: "6:00 PM", Result: match.Placeholder},
		{Date: "January 10, 2026", Opponent: "Burlington County Tournament", Location: "Rancocas Valley", Time: match.Placeholder, Result: match.Placeholder},
	}

	icsContent := calendar.GenerateICS(matches, "Shawnee High School")

	filename := "test-mat-schedule.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
