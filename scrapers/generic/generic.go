// Package generic reads product pages that publish schema.org Product data or
// OpenGraph tags, which covers most retailers without a dedicated parser.
package generic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/stylewise/models"
	"github.com/raushankrgupta/stylewise/scrapers/base"
)

type Scraper struct {
	*base.BaseScraper
}

func NewScraper(b *base.BaseScraper) *Scraper {
	return &Scraper{BaseScraper: b}
}

func (s *Scraper) CanScrape(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}

func (s *Scraper) ScrapeProduct(ctx context.Context, url string) (*models.Product, error) {
	doc, err := s.FetchDocument(ctx, url, func(doc *goquery.Document) bool {
		return doc.Find(`script[type="application/ld+json"]`).Length() > 0 ||
			doc.Find(`meta[property="og:title"]`).Length() > 0 ||
			base.IsValidDocument(doc)
	})
	if err != nil {
		return nil, err
	}
	return Parse(doc), nil
}

// Parse prefers JSON-LD Product data and fills gaps from OpenGraph tags and the page itself.
func Parse(doc *goquery.Document) *models.Product {
	product := &models.Product{}

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if ld, ok := findProduct(sel.Text()); ok {
			applyLD(product, ld)
			return false
		}
		return true
	})

	meta := func(property string) string {
		return strings.TrimSpace(doc.Find(fmt.Sprintf(`meta[property="%s"]`, property)).AttrOr("content", ""))
	}
	if product.Title == "" {
		product.Title = meta("og:title")
	}
	if product.Title == "" {
		product.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if product.Description == "" {
		product.Description = meta("og:description")
	}
	if product.DiscountedPrice == "" {
		if amount := meta("product:price:amount"); amount != "" {
			product.DiscountedPrice = strings.TrimSpace(meta("product:price:currency") + " " + amount)
		}
	}
	if product.Brand == "" {
		product.Brand = meta("product:brand")
	}
	if len(product.Images) == 0 {
		doc.Find(`meta[property="og:image"]`).Each(func(_ int, sel *goquery.Selection) {
			if src := sel.AttrOr("content", ""); src != "" {
				product.Images = append(product.Images, src)
			}
		})
	}
	return product
}

type ldProduct struct {
	Type        interface{}     `json:"@type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Color       string          `json:"color"`
	Material    string          `json:"material"`
	SKU         string          `json:"sku"`
	Brand       json.RawMessage `json:"brand"`
	Image       json.RawMessage `json:"image"`
	Offers      json.RawMessage `json:"offers"`
	Graph       []ldProduct     `json:"@graph"`
}

type ldOffer struct {
	Price         interface{} `json:"price"`
	PriceCurrency string      `json:"priceCurrency"`
}

// findProduct locates a Product node in a JSON-LD block, which may be a single
// object, an array or a @graph.
func findProduct(raw string) (ldProduct, bool) {
	raw = strings.TrimSpace(raw)
	var nodes []ldProduct
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &nodes); err != nil {
			return ldProduct{}, false
		}
	} else {
		var node ldProduct
		if err := json.Unmarshal([]byte(raw), &node); err != nil {
			return ldProduct{}, false
		}
		nodes = append([]ldProduct{node}, node.Graph...)
	}
	for _, n := range nodes {
		if isProductType(n.Type) {
			return n, true
		}
	}
	return ldProduct{}, false
}

func isProductType(t interface{}) bool {
	switch v := t.(type) {
	case string:
		return v == "Product"
	case []interface{}:
		for _, e := range v {
			if s, ok := e.(string); ok && s == "Product" {
				return true
			}
		}
	}
	return false
}

func applyLD(p *models.Product, ld ldProduct) {
	p.Title = strings.TrimSpace(ld.Name)
	p.Description = strings.TrimSpace(ld.Description)
	p.Category = ld.Category
	p.Color = ld.Color
	p.Material = ld.Material
	p.Brand = nameOf(ld.Brand)
	p.Images = stringsOf(ld.Image)

	var offer ldOffer
	if json.Unmarshal(ld.Offers, &offer) != nil {
		var offers []ldOffer
		if json.Unmarshal(ld.Offers, &offers) == nil && len(offers) > 0 {
			offer = offers[0]
		}
	}
	if offer.Price != nil {
		p.DiscountedPrice = strings.TrimSpace(fmt.Sprintf("%s %v", offer.PriceCurrency, offer.Price))
	}
	if ld.SKU != "" {
		p.Variants = []models.Variant{{SKU: ld.SKU, Color: ld.Color, Images: p.Images}}
	}
}

// nameOf reads a brand given either as a string or as {"name": ...}.
func nameOf(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var obj struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		return obj.Name
	}
	return ""
}

// stringsOf reads an image given as a string, a list of strings or ImageObjects.
func stringsOf(raw json.RawMessage) []string {
	var s string
	if json.Unmarshal(raw, &s) == nil && s != "" {
		return []string{s}
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return list
	}
	var objs []struct {
		URL string `json:"url"`
	}
	if json.Unmarshal(raw, &objs) == nil {
		var out []string
		for _, o := range objs {
			if o.URL != "" {
				out = append(out, o.URL)
			}
		}
		return out
	}
	return nil
}
