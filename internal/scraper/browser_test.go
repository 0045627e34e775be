package scraper

import (
	"testing"
	"time"
)

func TestBuildChromeOptions(t *testing.T) {
	opts := DefaultBrowserOptions()
	base := len(BuildChromeOptions(BrowserOptions{}))

	got := BuildChromeOptions(opts)
	// window size and user agent
	if len(got) != base+2 {
		t.Errorf("BuildChromeOptions() returned %d options, want %d", len(got), base+2)
	}
}

func TestNewBrowserFetcher_Defaults(t *testing.T) {
	f := NewBrowserFetcher(Options{Target: testTarget, UserAgent: "test-agent"})

	if f.browser.SettleDelay != DefaultSettleDelay {
		t.Errorf("SettleDelay = %v, want %v", f.browser.SettleDelay, DefaultSettleDelay)
	}
	if f.browser.UserAgent != "test-agent" {
		t.Errorf("UserAgent = %q, want test-agent", f.browser.UserAgent)
	}
	if !f.browser.Headless {
		t.Error("expected headless by default")
	}
	if f.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", f.timeout, DefaultTimeout)
	}
}

func TestNewBrowserFetcher_CustomOptions(t *testing.T) {
	f := NewBrowserFetcher(Options{
		Target:  testTarget,
		Timeout: time.Minute,
		Browser: BrowserOptions{WindowWidth: 800, WindowHeight: 600, SettleDelay: time.Second},
	})

	if f.browser.WindowWidth != 800 || f.browser.SettleDelay != time.Second {
		t.Errorf("custom browser options not kept: %+v", f.browser)
	}
	if f.browser.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q, want default", f.browser.UserAgent)
	}
}
