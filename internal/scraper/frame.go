package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/pfrederiksen/mat-schedule/internal/blob"
	"github.com/pfrederiksen/mat-schedule/internal/logger"
)

// FrameFetcher loads the LoadBalance page and, when the data is not on it,
// follows the iframe or frame that holds the team content
type FrameFetcher struct {
	client  *resty.Client
	baseURL string
	target  Target
}

// NewFrameFetcher creates a FrameFetcher
func NewFrameFetcher(opts Options) *FrameFetcher {
	opts = opts.withDefaults()
	return &FrameFetcher{
		client:  newClient(opts),
		baseURL: opts.BaseURL,
		target:  opts.Target,
	}
}

func (f *FrameFetcher) Name() string { return TransportFrame }

// Fetch returns the body of the frame carrying the page data. When the main
// page already contains the data, or has no frames at all, the main page is
// returned.
func (f *FrameFetcher) Fetch(ctx context.Context, page Page) (string, error) {
	mainURL := LoadBalanceURL(f.baseURL, f.target, page)
	res, err := get(ctx, f.client, mainURL)
	if err != nil {
		return "", err
	}

	body := res.String()
	if strings.Contains(body, blob.InitCall) {
		return body, nil
	}

	pageURL := mainURL
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		pageURL = res.RawResponse.Request.URL.String()
	}

	src, err := FindFrameSource(body, pageURL)
	if err != nil {
		return "", err
	}
	if src == "" {
		logger.Warn("no frame found on page", logger.Fields{
			"page": page.String(),
			"url":  pageURL,
		})
		return body, nil
	}

	logger.Debug("following frame", logger.Fields{
		"page":  page.String(),
		"frame": src,
	})

	frame, err := get(ctx, f.client, src)
	if err != nil {
		return "", fmt.Errorf("fetching frame: %w", err)
	}
	return frame.String(), nil
}

// FindFrameSource returns the absolute URL of the content frame of an HTML
// page: the first iframe with a src, else a frame named like "main" or
// "content". It returns "" when the page has neither.
func FindFrameSource(html, pageURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	var src string
	doc.Find("iframe[src]").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		src = strings.TrimSpace(sel.AttrOr("src", ""))
		return src == ""
	})

	if src == "" {
		doc.Find("frame[src]").EachWithBreak(func(i int, sel *goquery.Selection) bool {
			name := strings.ToLower(sel.AttrOr("name", ""))
			if strings.Contains(name, "main") || strings.Contains(name, "content") {
				src = strings.TrimSpace(sel.AttrOr("src", ""))
			}
			return src == ""
		})
	}

	if src == "" {
		return "", nil
	}

	return resolveURL(pageURL, src)
}

func resolveURL(pageURL, src string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parsing page URL: %w", err)
	}
	ref, err := url.Parse(src)
	if err != nil {
		return "", fmt.Errorf("parsing frame source %q: %w", src, err)
	}
	return base.ResolveReference(ref).String(), nil
}
