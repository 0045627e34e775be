package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/pfrederiksen/mat-schedule/internal/blob"
	"github.com/pfrederiksen/mat-schedule/internal/logger"
)

const (
	DefaultWindowWidth  = 1920
	DefaultWindowHeight = 1080
	DefaultSettleDelay  = 3 * time.Second
)

// BrowserOptions configures the headless Chrome instance
type BrowserOptions struct {
	Headless     bool
	WindowWidth  int
	WindowHeight int
	UserAgent    string
	SettleDelay  time.Duration // wait after body is ready for grid scripts to run
}

// DefaultBrowserOptions returns standard browser options
func DefaultBrowserOptions() BrowserOptions {
	return BrowserOptions{
		Headless:     true,
		WindowWidth:  DefaultWindowWidth,
		WindowHeight: DefaultWindowHeight,
		UserAgent:    DefaultUserAgent,
		SettleDelay:  DefaultSettleDelay,
	}
}

// BuildChromeOptions creates Chrome allocator options from BrowserOptions
func BuildChromeOptions(opts BrowserOptions) []chromedp.ExecAllocatorOption {
	chromeOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	chromeOpts = append(chromeOpts,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-extensions", true),
	)

	if opts.Headless {
		chromeOpts = append(chromeOpts, chromedp.Flag("headless", "new"))
	} else {
		chromeOpts = append(chromeOpts, chromedp.Flag("headless", false))
	}

	if opts.WindowWidth > 0 && opts.WindowHeight > 0 {
		chromeOpts = append(chromeOpts, chromedp.WindowSize(opts.WindowWidth, opts.WindowHeight))
	}

	if opts.UserAgent != "" {
		chromeOpts = append(chromeOpts, chromedp.UserAgent(opts.UserAgent))
	}

	return chromeOpts
}

// BrowserFetcher renders pages in headless Chrome and returns the resulting
// DOM. It needs a Chrome or Chromium binary on the host.
type BrowserFetcher struct {
	baseURL string
	target  Target
	timeout time.Duration
	browser BrowserOptions
}

// NewBrowserFetcher creates a BrowserFetcher
func NewBrowserFetcher(opts Options) *BrowserFetcher {
	opts = opts.withDefaults()
	browser := opts.Browser
	if browser.WindowWidth == 0 && browser.WindowHeight == 0 && browser.SettleDelay == 0 {
		ua := browser.UserAgent
		browser = DefaultBrowserOptions()
		browser.UserAgent = ua
	}
	return &BrowserFetcher{
		baseURL: opts.BaseURL,
		target:  opts.Target,
		timeout: opts.Timeout,
		browser: browser,
	}
}

func (f *BrowserFetcher) Name() string { return TransportBrowser }

// Fetch navigates to the page, waits for scripts to settle and returns the
// rendered HTML. When the top document carries no data, each frame is
// visited in turn and the first one that does is returned.
func (f *BrowserFetcher) Fetch(ctx context.Context, page Page) (string, error) {
	ctx, cancelTimeout := context.WithTimeout(ctx, f.timeout)
	defer cancelTimeout()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, BuildChromeOptions(f.browser)...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	pageURL := LoadBalanceURL(f.baseURL, f.target, page)
	html, err := f.render(browserCtx, pageURL)
	if err != nil {
		return "", err
	}
	if strings.Contains(html, blob.InitCall) {
		return html, nil
	}

	var frames []string
	if err := chromedp.Run(browserCtx, chromedp.Evaluate(
		`Array.from(document.querySelectorAll('iframe[src], frame[src]')).map(f => f.src)`,
		&frames,
	)); err != nil {
		return "", fmt.Errorf("listing frames: %w", err)
	}

	for _, src := range frames {
		logger.Debug("rendering frame", logger.Fields{
			"page":  page.String(),
			"frame": src,
		})
		frameHTML, err := f.render(browserCtx, src)
		if err != nil {
			logger.Warn("failed to render frame", logger.Fields{
				"frame": src,
				"error": err.Error(),
			})
			continue
		}
		if strings.Contains(frameHTML, blob.InitCall) {
			return frameHTML, nil
		}
	}

	return html, nil
}

func (f *BrowserFetcher) render(ctx context.Context, pageURL string) (string, error) {
	var html string
	err := chromedp.Run(ctx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(f.browser.SettleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", pageURL, err)
	}
	return html, nil
}
