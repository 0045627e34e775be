// Package scraper fetches TrackWrestling team pages and turns them into a
// match.ScrapeResult.
//
// Pages are obtained through a Fetcher. Four strategies share that contract:
// a plain HTTP request to the LoadBalance entry point, the AjaxFunctions.jsp
// endpoint that returns the data array directly, a frame follower for pages
// that wrap their content in an iframe or frameset, and a headless Chrome
// browser for pages that only carry data once scripts have run. Whatever the
// strategy, the returned text goes through the same blob pipeline in
// package normalize, with HTML table parsing as a fallback for roster and
// results pages.
package scraper
