package scrapers

import (
	"context"
	"fmt"
	"strings"

	"github.com/raushankrgupta/stylewise/models"
	"github.com/raushankrgupta/stylewise/scrapers/base"
	"github.com/raushankrgupta/stylewise/scrapers/generic"
	"github.com/raushankrgupta/stylewise/scrapers/myntra"
	"github.com/raushankrgupta/stylewise/utils"
	"go.uber.org/zap"
)

// Importer turns a product link into a scraped product.
type Importer struct {
	scrapers []Scraper
	resolve  func(ctx context.Context, url string) (string, error)
	log      *zap.Logger
}

// NewImporter registers the retailer scrapers. The generic scraper goes last and
// accepts any http(s) link.
func NewImporter(opts base.Options, log *zap.Logger) *Importer {
	b := base.NewBaseScraper(opts, log)
	return &Importer{
		scrapers: []Scraper{
			myntra.NewMyntraScraper(b),
			generic.NewScraper(b),
		},
		resolve: utils.ResolveShortenedURL,
		log:     log,
	}
}

// GetScraper returns the first registered scraper for the URL.
func (im *Importer) GetScraper(url string) (Scraper, error) {
	for _, s := range im.scrapers {
		if s.CanScrape(url) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no scraper found for url: %s", url)
}

// Import resolves shortened links, scrapes the product and records where it came from.
func (im *Importer) Import(ctx context.Context, rawURL string) (*models.Product, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return nil, utils.BadRequest("url must start with http:// or https://")
	}

	resolvedURL, err := im.resolve(ctx, rawURL)
	if err != nil {
		im.log.Info("could not resolve url, using it as given", zap.String("url", rawURL), zap.Error(err))
		resolvedURL = rawURL
	}

	scraper, err := im.GetScraper(resolvedURL)
	if err != nil {
		return nil, utils.BadRequest(err.Error())
	}

	product, err := scraper.ScrapeProduct(ctx, resolvedURL)
	if err != nil {
		return nil, fmt.Errorf("scraping failed: %w", err)
	}
	if product.Title == "" {
		return nil, fmt.Errorf("scraping failed: no product title on %s", resolvedURL)
	}
	product.SourceURL = resolvedURL
	product.Images = dedupe(product.Images)
	return product, nil
}

func dedupe(images []string) []string {
	seen := make(map[string]bool, len(images))
	out := images[:0]
	for _, img := range images {
		if img == "" || seen[img] {
			continue
		}
		seen[img] = true
		out = append(out, img)
	}
	return out
}
