package models

import (
	"time"

	"github.com/raushankrgupta/stylewise/analysis"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Variant represents a specific product variation
type Variant struct {
	SKU    string   `json:"sku"`
	Size   string   `json:"size"`
	Color  string   `json:"color"`
	Images []string `json:"image_paths"`
}

// Product represents the scraped product details
type Product struct {
	SourceURL       string    `json:"source_url"`
	Title           string    `json:"title"`
	Brand           string    `json:"brand"`
	MRP             string    `json:"mrp"`              // Maximum Retail Price (List Price)
	DiscountedPrice string    `json:"discounted_price"` // Selling Price
	Description     string    `json:"description"`
	Category        string    `json:"category"` // retailer's own category, if any
	Color           string    `json:"color"`
	Material        string    `json:"material"`
	FitType         string    `json:"fit_type"`
	Images          []string  `json:"image_paths"`
	Variants        []Variant `json:"variants,omitempty"`
}

// WardrobeItem is an imported product filed under a garment category
type WardrobeItem struct {
	ID               primitive.ObjectID       `bson:"_id,omitempty" json:"id"`
	UserID           string                   `bson:"user_id" json:"user_id"`
	SourceURL        string                   `bson:"source_url" json:"source_url"`
	Title            string                   `bson:"title" json:"title"`
	Brand            string                   `bson:"brand,omitempty" json:"brand,omitempty"`
	Price            string                   `bson:"price,omitempty" json:"price,omitempty"`
	Color            string                   `bson:"color,omitempty" json:"color,omitempty"`
	Category         analysis.GarmentCategory `bson:"category" json:"category"`
	RetailerCategory string                   `bson:"retailer_category,omitempty" json:"retailer_category,omitempty"`
	ImageKeys        []string                 `bson:"image_keys" json:"-"`
	ImageURLs        []string                 `bson:"-" json:"image_urls,omitempty"` // presigned on read
	CreatedAt        time.Time                `bson:"created_at" json:"created_at"`
}

// NewWardrobeItem files a scraped product under its garment category
func NewWardrobeItem(userID string, p *Product) *WardrobeItem {
	price := p.DiscountedPrice
	if price == "" {
		price = p.MRP
	}
	return &WardrobeItem{
		UserID:           userID,
		SourceURL:        p.SourceURL,
		Title:            p.Title,
		Brand:            p.Brand,
		Price:            price,
		Color:            p.Color,
		Category:         analysis.ClassifyGarment(p.Title, p.Category),
		RetailerCategory: p.Category,
		ImageKeys:        append([]string(nil), p.Images...),
	}
}
