package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/mat-schedule/internal/match"
)

var (
	rosterHeaderWords  = []string{"name", "weight", "grade", "wrestler", "record"}
	resultsHeaderWords = []string{"date", "opponent", "score", "result", "location"}
)

// tableRows returns the trimmed cell texts of every table row with at least
// minCells cells, skipping header rows and rows with no text
func tableRows(html string, minCells int, headerWords []string) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	rows := make([][]string, 0)
	doc.Find("table tr").Each(func(i int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("td, th")
		if cells.Length() < minCells {
			return
		}

		texts := make([]string, 0, cells.Length())
		empty := true
		cells.Each(func(j int, cell *goquery.Selection) {
			text := strings.Join(strings.Fields(cell.Text()), " ")
			if text != "" {
				empty = false
			}
			texts = append(texts, text)
		})

		if empty || isHeaderRow(tr, cells, texts, headerWords) {
			return
		}
		rows = append(rows, texts)
	})

	return rows, nil
}

// isHeaderRow treats a row as a header when all its cells are <th>, or when
// at least two cells read like column titles
func isHeaderRow(tr, cells *goquery.Selection, texts []string, words []string) bool {
	if tr.ChildrenFiltered("th").Length() == cells.Length() {
		return true
	}

	titles := 0
	for _, text := range texts {
		lower := strings.ToLower(text)
		for _, w := range words {
			if strings.Contains(lower, w) {
				titles++
				break
			}
		}
	}
	return titles >= 2
}

func cell(texts []string, i int) string {
	if i < len(texts) {
		return texts[i]
	}
	return ""
}

// ParseRosterTable reads roster entries from HTML tables laid out as
// name, weight class, grade, record
func ParseRosterTable(html string) ([]match.RosterEntry, error) {
	rows, err := tableRows(html, 2, rosterHeaderWords)
	if err != nil {
		return nil, err
	}

	roster := make([]match.RosterEntry, 0, len(rows))
	for _, texts := range rows {
		entry := match.RosterEntry{
			Name:        cell(texts, 0),
			WeightClass: cell(texts, 1),
			Grade:       cell(texts, 2),
			Record:      cell(texts, 3),
		}
		// single letters and initials are layout noise
		if len(entry.Name) <= 2 {
			continue
		}
		roster = append(roster, entry)
	}

	return roster, nil
}

// ParseResultsTable reads results from HTML tables laid out as
// date, opponent, score, result, location
func ParseResultsTable(html string) ([]match.ResultEntry, error) {
	rows, err := tableRows(html, 3, resultsHeaderWords)
	if err != nil {
		return nil, err
	}

	results := make([]match.ResultEntry, 0, len(rows))
	for _, texts := range rows {
		entry := match.ResultEntry{
			Date:     cell(texts, 0),
			Opponent: cell(texts, 1),
			Score:    cell(texts, 2),
			Result:   cell(texts, 3),
			Location: cell(texts, 4),
		}
		if entry.Date == "" || entry.Opponent == "" {
			continue
		}
		results = append(results, entry)
	}

	return results, nil
}
