package scraper

import (
	"fmt"
	"strings"
)

// Page identifies one of the team pages on the site
type Page int

const (
	PageSchedule Page = iota
	PageRoster
	PageResults
)

// Pages lists every page in scrape order
var Pages = []Page{PageRoster, PageSchedule, PageResults}

func (p Page) String() string {
	switch p {
	case PageSchedule:
		return "schedule"
	case PageRoster:
		return "roster"
	case PageResults:
		return "results"
	default:
		return fmt.Sprintf("page(%d)", int(p))
	}
}

// JSP returns the page name passed to LoadBalance.jsp
func (p Page) JSP() string {
	switch p {
	case PageSchedule:
		return "TeamSchedule.jsp"
	case PageRoster:
		return "TeamRoster.jsp"
	case PageResults:
		return "TeamResults.jsp"
	default:
		return ""
	}
}

// AjaxFunction returns the AjaxFunctions.jsp function serving the page.
// Results have no AJAX equivalent.
func (p Page) AjaxFunction() (string, bool) {
	switch p {
	case PageSchedule:
		return "getTeamSchedule", true
	case PageRoster:
		return "getTeamRoster", true
	default:
		return "", false
	}
}

// Target identifies the team and season being scraped
type Target struct {
	TeamID   string
	SeasonID string
	GBID     string
}

// DefaultGBID is the governing body ID used by every team page
const DefaultGBID = "36"

func (t Target) gbID() string {
	if t.GBID == "" {
		return DefaultGBID
	}
	return t.GBID
}

// LoadBalanceURL builds the public entry point URL for a team page.
// The site expects teamId after a semicolon inside pageName, so the query is
// written literally rather than encoded.
func LoadBalanceURL(baseURL string, t Target, p Page) string {
	return fmt.Sprintf("%s/tw/seasons/LoadBalance.jsp?seasonId=%s&gbId=%s&pageName=%s;teamId=%s",
		strings.TrimRight(baseURL, "/"), t.SeasonID, t.gbID(), p.JSP(), t.TeamID)
}

// AjaxURL builds the AjaxFunctions.jsp URL for a page. tim is the cache
// busting timestamp in unix milliseconds.
func AjaxURL(baseURL string, t Target, function, sessionID string, tim int64) string {
	return fmt.Sprintf("%s/tw/seasons/AjaxFunctions.jsp?TIM=%d&twSessionId=%s&function=%s&teamId=%s&seasonId=%s",
		strings.TrimRight(baseURL, "/"), tim, sessionID, function, t.TeamID, t.SeasonID)
}
