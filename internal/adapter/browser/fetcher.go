// Package browser renders the dashboard page in headless Chrome. The
// embed populates its DOM from client-side script, so a plain HTTP GET
// returns an empty shell; rendering plus a fixed settle delay is the only
// way to observe the values.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Page is a fully rendered document: the serialized markup after script
// execution plus a screenshot for offline diagnosis.
type Page struct {
	HTML       string
	Screenshot []byte
}

// Fetcher loads and renders pages with headless Chrome.
type Fetcher struct {
	timeout     time.Duration
	settleDelay time.Duration
	logger      *slog.Logger
}

// NewFetcher creates a page fetcher. The settle delay runs after page load
// to let the embed's script populate the DOM; it is a tuned constant, not
// adaptive.
func NewFetcher(timeout, settleDelay time.Duration, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		timeout:     timeout,
		settleDelay: settleDelay,
		logger:      logger,
	}
}

// Fetch renders url and returns the resulting page. The page-load timeout
// and the settle delay both count against the fetch budget.
func (f *Fetcher) Fetch(ctx context.Context, url string) (Page, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout+f.settleDelay)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(userAgent),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	f.logger.Info("fetching page", "url", url)
	start := time.Now()

	var page Page
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(f.settleDelay),
		chromedp.OuterHTML("html", &page.HTML, chromedp.ByQuery),
		chromedp.CaptureScreenshot(&page.Screenshot),
	)
	if err != nil {
		return Page{}, fmt.Errorf("render %s: %w", url, err)
	}

	f.logger.Info("page rendered", "url", url, "bytes", len(page.HTML), "duration", time.Since(start))
	return page, nil
}
