package analysis

import "strings"

// GarmentCategory is the wardrobe slot an imported product fills.
type GarmentCategory string

const (
	GarmentDress     GarmentCategory = "dress"
	GarmentOuterwear GarmentCategory = "outerwear"
	GarmentTop       GarmentCategory = "top"
	GarmentBottom    GarmentCategory = "bottom"
	GarmentFootwear  GarmentCategory = "footwear"
	GarmentAccessory GarmentCategory = "accessory"
	GarmentOther     GarmentCategory = "other"
)

type garmentRule struct {
	Category GarmentCategory `yaml:"category"`
	Keywords []string        `yaml:"keywords"`
}

// ClassifyGarment maps a product title (and optional retailer category) to a wardrobe
// category using ordered keyword rules; the first match wins.
func ClassifyGarment(title string, hints ...string) GarmentCategory {
	lower := strings.ToLower(strings.Join(append([]string{title}, hints...), " "))
	for _, r := range data().consultant.Garments {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Category
			}
		}
	}
	return GarmentOther
}
