package base

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"go.uber.org/zap"
)

const (
	defaultChromeDriverPath = "/usr/local/bin/chromedriver"
	seleniumPageLoad        = 60 * time.Second
)

// hides the usual webdriver fingerprints from bot checks
const maskScript = `
Object.defineProperty(navigator, 'webdriver', {get: () => undefined});
window.chrome = {runtime: {}};
`

func chromeCapabilities() selenium.Capabilities {
	caps := selenium.Capabilities{"browserName": "chrome"}
	caps.AddChrome(chrome.Capabilities{
		Args: []string{
			"--headless=new",
			"--no-sandbox",
			"--disable-dev-shm-usage",
			"--disable-blink-features=AutomationControlled",
			"--window-size=1920,1080",
			"--user-agent=" + userAgent,
		},
		ExcludeSwitches: []string{"enable-automation"},
	})
	return caps
}

// FetchDocumentSelenium drives a full Chrome through chromedriver. Each call runs its
// own driver service on a port leased from the scraper's pool.
func (b *BaseScraper) FetchDocumentSelenium(ctx context.Context, url string) (*goquery.Document, error) {
	port, err := b.ports.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer b.ports.Release(port)

	service, err := selenium.NewChromeDriverService(b.opts.ChromeDriverPath, port)
	if err != nil {
		return nil, fmt.Errorf("start chromedriver on %d: %w", port, err)
	}
	defer service.Stop()

	driver, err := selenium.NewRemote(chromeCapabilities(), fmt.Sprintf("http://localhost:%d/wd/hub", port))
	if err != nil {
		return nil, fmt.Errorf("open webdriver session: %w", err)
	}
	defer driver.Quit()

	if err := driver.SetPageLoadTimeout(seleniumPageLoad); err != nil {
		return nil, err
	}
	if err := driver.Get(url); err != nil {
		return nil, fmt.Errorf("selenium load %s: %w", url, err)
	}
	if _, err := driver.ExecuteScript(maskScript, nil); err != nil {
		b.log.Debug("mask script failed", zap.Error(err))
	}

	// lazy-loaded galleries only render after a scroll
	if err := sleepCtx(ctx, 2*time.Second); err != nil {
		return nil, err
	}
	if _, err := driver.ExecuteScript(`window.scrollTo(0, document.body.scrollHeight / 2);`, nil); err != nil {
		b.log.Debug("scroll failed", zap.Error(err))
	}
	if err := sleepCtx(ctx, 2*time.Second); err != nil {
		return nil, err
	}

	source, err := driver.PageSource()
	if err != nil {
		return nil, fmt.Errorf("read page source: %w", err)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(source))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
