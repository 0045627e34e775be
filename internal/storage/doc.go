// Package storage persists the scraped team data file.
//
// The file is the envelope the team website reads: metadata plus roster,
// schedule and results sections, written as indented UTF-8 JSON. Writes go
// through a temporary file in the same directory so readers never see a
// partially written document. The previous file is also what the CLI diffs
// a fresh scrape against.
package storage
