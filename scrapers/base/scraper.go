package base

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Options controls the browser fallbacks.
type Options struct {
	// BrowserFallback enables the chromedp and selenium strategies when plain HTTP fails.
	BrowserFallback  bool
	ChromeDriverPath string
}

// BaseScraper handles common scraping logic
type BaseScraper struct {
	Client *http.Client
	opts   Options
	ports  *PortManager
	log    *zap.Logger
}

// NewBaseScraper creates a new BaseScraper instance
func NewBaseScraper(opts Options, log *zap.Logger) *BaseScraper {
	if opts.ChromeDriverPath == "" {
		opts.ChromeDriverPath = defaultChromeDriverPath
	}
	return &BaseScraper{
		Client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				ForceAttemptHTTP2:     false,
				TLSNextProto:          make(map[string]func(string, *tls.Conn) http.RoundTripper),
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		opts:  opts,
		ports: NewPortManager(4444, 16),
		log:   log,
	}
}

type fetchStrategy struct {
	name  string
	fetch func(context.Context, string) (*goquery.Document, error)
}

// FetchDocument tries plain HTTP first, then (with BrowserFallback) headless chromedp
// and a full selenium browser, returning the first page the validator accepts.
func (b *BaseScraper) FetchDocument(ctx context.Context, url string, validator func(*goquery.Document) bool) (*goquery.Document, error) {
	strategies := []fetchStrategy{{"http", b.FetchDocumentHTTP}}
	if b.opts.BrowserFallback {
		strategies = append(strategies,
			fetchStrategy{"chromedp", b.FetchDocumentChromeDP},
			fetchStrategy{"selenium", b.FetchDocumentSelenium},
		)
	}

	for _, st := range strategies {
		doc, err := st.fetch(ctx, url)
		switch {
		case err != nil:
			b.log.Info("fetch failed", zap.String("strategy", st.name), zap.String("url", url), zap.Error(err))
		case !validator(doc):
			b.log.Info("fetch returned unusable page", zap.String("strategy", st.name), zap.String("url", url))
		default:
			b.log.Debug("fetch succeeded", zap.String("strategy", st.name), zap.String("url", url))
			return doc, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("could not fetch a usable page from %s", url)
}

// IsValidDocument rejects bot walls and near-empty pages.
func IsValidDocument(doc *goquery.Document) bool {
	title := strings.ToLower(strings.TrimSpace(doc.Find("title").Text()))
	body := strings.TrimSpace(doc.Find("body").Text())

	if strings.Contains(title, "robot check") ||
		strings.Contains(title, "captcha") ||
		strings.Contains(title, "access denied") {
		return false
	}

	return len(body) > 200
}

// FetchDocumentHTTP fetches the URL and returns a GoQuery document via standard HTTP
func (b *BaseScraper) FetchDocumentHTTP(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	for k, v := range navigationHeaders {
		req.Header.Set(k, fmt.Sprint(v))
	}

	res, err := b.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, res.Status)
	}

	return goquery.NewDocumentFromReader(res.Body)
}
