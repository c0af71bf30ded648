package base

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const (
	chromeTimeout = 2 * time.Minute
	// client-rendered product pages fill their gallery after load
	renderSettle = 3 * time.Second
)

var navigationHeaders = network.Headers{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language": "en-IN,en;q=0.8",
	"Sec-Fetch-Dest":  "document",
	"Sec-Fetch-Mode":  "navigate",
}

// FetchDocumentChromeDP renders the URL in headless Chrome and parses the final HTML.
func (b *BaseScraper) FetchDocumentChromeDP(ctx context.Context, url string) (*goquery.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, chromeTimeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.UserAgent(userAgent),
	)...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var page string
	if err := chromedp.Run(browserCtx, renderPage(url, &page)); err != nil {
		return nil, fmt.Errorf("chromedp render %s: %w", url, err)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(page))
}

func renderPage(url string, out *string) chromedp.Tasks {
	return chromedp.Tasks{
		network.SetExtraHTTPHeaders(navigationHeaders),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight / 2)`, nil),
		chromedp.Sleep(renderSettle),
		chromedp.OuterHTML("html", out),
	}
}
