package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the minimum extracted description length for a plain
// HTTP fetch to be considered complete. Shorter content usually means the
// posting is rendered client-side and needs a browser.
const MinContentLength = 500

// ShouldUseBrowser reports whether the extracted description is too short,
// indicating a JavaScript-rendered posting page.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// RenderPage loads the posting page in a headless browser and returns the
// rendered HTML. Requires Chrome/Chromium on the system.
func RenderPage(ctx context.Context, url string, timeout time.Duration) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to populate the description.
		chromedp.Sleep(3*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Dismiss cookie banners when present; ignore failures.
			_ = chromedp.Click(`button[id*="accept"], button[class*="accept"]`, chromedp.NodeVisible).Do(ctx)
			return nil
		}),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	return html, nil
}

// PostingFromURL fetches and extracts one posting, escalating from plain
// HTTP to a headless browser when the page appears JavaScript-rendered.
func PostingFromURL(ctx context.Context, url string, opts *Options) (Posting, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	result, err := Page(ctx, url, opts)
	if err != nil {
		return Posting{}, err
	}

	posting, extractErr := ExtractPosting(result.HTML, url)
	if extractErr == nil && !ShouldUseBrowser(posting.Description) {
		return posting, nil
	}

	html, renderErr := RenderPage(ctx, url, opts.Timeout)
	if renderErr != nil {
		// Browser escalation is best effort. Keep the HTTP result when it
		// produced anything at all.
		if extractErr == nil {
			return posting, nil
		}
		return Posting{}, extractErr
	}

	return ExtractPosting(html, url)
}
