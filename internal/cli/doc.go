// Package cli implements the command-line interface for mat-schedule.
//
// The root command scrapes the configured team season, diffs the new
// schedule against the stored data file, saves the file and reports what
// changed. Subcommands show the stored data, manage seasons in the config
// file, export the schedule as a calendar and run the page pipeline on a
// saved HTML file for debugging.
package cli
