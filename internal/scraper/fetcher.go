package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL   = "https://www.trackwrestling.com"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	DefaultTimeout   = 30 * time.Second
	DefaultSessionID = "kmgthfvfkl"
)

// Transport names accepted by NewFetcher
const (
	TransportHTTP    = "http"
	TransportAJAX    = "ajax"
	TransportFrame   = "frame"
	TransportBrowser = "browser"
)

var (
	// ErrUnsupportedPage is returned when a transport cannot serve a page
	ErrUnsupportedPage = errors.New("page not supported by transport")
	// ErrUnexpectedStatus is returned for non-200 responses
	ErrUnexpectedStatus = errors.New("unexpected status code")
)

// Fetcher retrieves the raw text of a team page
type Fetcher interface {
	Fetch(ctx context.Context, page Page) (string, error)
	Name() string
}

// Options configures a Fetcher
type Options struct {
	Transport        string
	BaseURL          string
	Target           Target
	UserAgent        string
	Timeout          time.Duration
	CloudflareBypass bool
	SessionID        string // AJAX only
	Browser          BrowserOptions
}

func (o Options) withDefaults() Options {
	if o.Transport == "" {
		o.Transport = TransportHTTP
	}
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.SessionID == "" {
		o.SessionID = DefaultSessionID
	}
	if o.Browser.UserAgent == "" {
		o.Browser.UserAgent = o.UserAgent
	}
	return o
}

// NewFetcher creates the Fetcher named by opts.Transport
func NewFetcher(opts Options) (Fetcher, error) {
	opts = opts.withDefaults()

	switch strings.ToLower(opts.Transport) {
	case TransportHTTP:
		return NewHTTPFetcher(opts), nil
	case TransportAJAX:
		return NewAJAXFetcher(opts), nil
	case TransportFrame:
		return NewFrameFetcher(opts), nil
	case TransportBrowser:
		return NewBrowserFetcher(opts), nil
	default:
		return nil, fmt.Errorf("unknown transport %q (want %s, %s, %s or %s)",
			opts.Transport, TransportHTTP, TransportAJAX, TransportFrame, TransportBrowser)
	}
}

// newClient builds the resty client shared by the request based fetchers
func newClient(opts Options) *resty.Client {
	client := resty.New()
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetHeader("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetHeader("accept-language", "en-US,en;q=0.9")
	client.SetTimeout(opts.Timeout)
	return client
}

// get performs a GET and returns the body, treating anything but 200 as an error
func get(ctx context.Context, client *resty.Client, url string) (*resty.Response, error) {
	res, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, res.StatusCode(), url)
	}
	return res, nil
}
