package myntra

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/stylewise/models"
	"github.com/raushankrgupta/stylewise/scrapers/base"
)

const stateMarker = "window.__myx ="

type MyntraScraper struct {
	*base.BaseScraper
}

func NewMyntraScraper(b *base.BaseScraper) *MyntraScraper {
	return &MyntraScraper{BaseScraper: b}
}

func (s *MyntraScraper) CanScrape(url string) bool {
	return strings.Contains(url, "myntra.com")
}

func (s *MyntraScraper) ScrapeProduct(ctx context.Context, url string) (*models.Product, error) {
	doc, err := s.FetchDocument(ctx, url, func(doc *goquery.Document) bool {
		return strings.Contains(doc.Text(), "window.__myx") || doc.Find("h1").Length() > 0
	})
	if err != nil {
		return nil, err
	}
	return Parse(doc), nil
}

// pdpData is the part of the embedded page state that describes the product.
type pdpData struct {
	Name           string      `json:"name"`
	MRP            interface{} `json:"mrp"`
	Price          interface{} `json:"price"`
	ProductDetails []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"productDetails"`
	Brand struct {
		Name string `json:"name"`
	} `json:"brand"`
	BaseColour   string `json:"baseColour"`
	AnalyticsMap struct {
		ArticleType string `json:"articleType"`
	} `json:"analytics"`
	Media struct {
		Albums []struct {
			Images []struct {
				Src string `json:"src"`
			} `json:"images"`
		} `json:"albums"`
	} `json:"media"`
}

// Parse reads the embedded page state, falling back to the rendered markup.
func Parse(doc *goquery.Document) *models.Product {
	product := &models.Product{}

	if pd, ok := pageState(doc); ok {
		product.Title = pd.Name
		product.Brand = pd.Brand.Name
		product.Color = pd.BaseColour
		product.Category = pd.AnalyticsMap.ArticleType
		product.MRP = rupees(pd.MRP)
		product.DiscountedPrice = rupees(pd.Price)
		for _, d := range pd.ProductDetails {
			if d.Description != "" {
				product.Description = d.Description
				break
			}
		}
		for _, album := range pd.Media.Albums {
			for _, img := range album.Images {
				if img.Src != "" {
					product.Images = append(product.Images, img.Src)
				}
			}
		}
	}

	if product.Title == "" {
		product.Brand = strings.TrimSpace(doc.Find(".pdp-title").Text())
		product.Title = strings.TrimSpace(doc.Find(".pdp-name").Text())
		product.DiscountedPrice = strings.TrimSpace(doc.Find(".pdp-price").First().Text())
		product.MRP = strings.TrimSpace(doc.Find(".pdp-mrp").First().Text())
		product.Description = strings.TrimSpace(doc.Find(".pdp-product-description-content").Text())

		doc.Find(".image-grid-image").Each(func(i int, s *goquery.Selection) {
			// background-image: url("...")
			style := s.AttrOr("style", "")
			start := strings.Index(style, "url(")
			if start == -1 {
				return
			}
			start += len("url(")
			if end := strings.Index(style[start:], ")"); end != -1 {
				product.Images = append(product.Images, strings.Trim(style[start:start+end], "\"'"))
			}
		})
	}

	return product
}

func pageState(doc *goquery.Document) (pdpData, bool) {
	var raw string
	doc.Find("script").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, stateMarker)
		if idx == -1 {
			return true
		}
		raw = strings.TrimSuffix(strings.TrimSpace(text[idx+len(stateMarker):]), ";")
		return false
	})
	if raw == "" {
		return pdpData{}, false
	}

	var state struct {
		PDPData pdpData `json:"pdpData"`
	}
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return pdpData{}, false
	}
	return state.PDPData, state.PDPData.Name != ""
}

func rupees(v interface{}) string {
	if v == nil {
		return ""
	}
	s := fmt.Sprintf("%v", v)
	if s == "" || strings.Contains(s, "Rs") {
		return s
	}
	return "Rs. " + s
}
