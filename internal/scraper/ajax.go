package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// AJAXFetcher calls AjaxFunctions.jsp, which answers with the data array
// itself, usually wrapped in a JavaScript string literal
type AJAXFetcher struct {
	client    *resty.Client
	baseURL   string
	target    Target
	sessionID string
	now       func() time.Time
}

// NewAJAXFetcher creates an AJAXFetcher
func NewAJAXFetcher(opts Options) *AJAXFetcher {
	opts = opts.withDefaults()
	client := newClient(opts)
	client.SetHeader("x-requested-with", "XMLHttpRequest")
	client.SetHeader("referer", LoadBalanceURL(opts.BaseURL, opts.Target, PageSchedule))
	return &AJAXFetcher{
		client:    client,
		baseURL:   opts.BaseURL,
		target:    opts.Target,
		sessionID: opts.SessionID,
		now:       time.Now,
	}
}

func (f *AJAXFetcher) Name() string { return TransportAJAX }

// Fetch returns the raw endpoint response. Pages without an AJAX function
// return ErrUnsupportedPage.
func (f *AJAXFetcher) Fetch(ctx context.Context, page Page) (string, error) {
	function, ok := page.AjaxFunction()
	if !ok {
		return "", fmt.Errorf("%w: %s over %s", ErrUnsupportedPage, page, TransportAJAX)
	}

	url := AjaxURL(f.baseURL, f.target, function, f.sessionID, f.now().UnixMilli())
	res, err := get(ctx, f.client, url)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}
