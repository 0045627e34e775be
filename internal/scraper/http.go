package scraper

import (
	"context"

	"github.com/go-resty/resty/v2"
)

// HTTPFetcher requests pages through the LoadBalance.jsp entry point and
// returns the body after redirects
type HTTPFetcher struct {
	client  *resty.Client
	baseURL string
	target  Target
}

// NewHTTPFetcher creates an HTTPFetcher
func NewHTTPFetcher(opts Options) *HTTPFetcher {
	opts = opts.withDefaults()
	return &HTTPFetcher{
		client:  newClient(opts),
		baseURL: opts.BaseURL,
		target:  opts.Target,
	}
}

func (f *HTTPFetcher) Name() string { return TransportHTTP }

// Fetch returns the page body
func (f *HTTPFetcher) Fetch(ctx context.Context, page Page) (string, error) {
	res, err := get(ctx, f.client, LoadBalanceURL(f.baseURL, f.target, page))
	if err != nil {
		return "", err
	}
	return res.String(), nil
}
