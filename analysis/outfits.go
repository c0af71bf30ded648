package analysis

import (
	"slices"
	"sort"
)

const (
	baseOutfitScore = 70
	bodyMatchBonus  = 20
	faceMatchBonus  = 10
	maxOutfitScore  = 100
)

// OutfitItem is one garment in a catalog outfit.
type OutfitItem struct {
	Type  string `yaml:"type" json:"type"`
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color" json:"color"`
}

// Outfit is a curated look and the shapes it suits. Gender is "female", "male" or "unisex".
type Outfit struct {
	ID          string       `yaml:"id" json:"id"`
	Name        string       `yaml:"name" json:"name"`
	Occasion    string       `yaml:"occasion" json:"occasion"`
	Gender      string       `yaml:"gender" json:"gender"`
	Description string       `yaml:"description" json:"description"`
	Colors      []string     `yaml:"colors" json:"colors"`
	BodyShapes  []BodyShape  `yaml:"body_shapes" json:"body_shapes"`
	FaceShapes  []FaceShape  `yaml:"face_shapes" json:"face_shapes"`
	Items       []OutfitItem `yaml:"items" json:"items"`
}

// OutfitMatch is an outfit with its personalization score.
type OutfitMatch struct {
	Outfit Outfit `json:"outfit"`
	Score  int    `json:"score"`
}

type ColorSeason struct {
	Name        string   `yaml:"name" json:"name"`
	Colors      []string `yaml:"colors" json:"colors"`
	Description string   `yaml:"description" json:"description"`
}

// Outfits returns the whole catalog.
func Outfits() []Outfit {
	return append([]Outfit(nil), data().outfits.Outfits...)
}

func FindOutfit(id string) (Outfit, bool) {
	for _, o := range data().outfits.Outfits {
		if o.ID == id {
			return o, true
		}
	}
	return Outfit{}, false
}

// ColorSeasons returns the seasonal palettes.
func ColorSeasons() []ColorSeason {
	return append([]ColorSeason(nil), data().outfits.ColorSeasons...)
}

// SuggestOutfits filters the catalog by gender, known body shape and occasion
// ("" or "all" keeps every occasion) and ranks what is left by personalization score.
func SuggestOutfits(p Profile, occasion string) []OutfitMatch {
	gender := string(ParseGender(string(p.Gender)))
	var matches []OutfitMatch
	for _, o := range data().outfits.Outfits {
		if o.Gender != "unisex" && o.Gender != gender {
			continue
		}
		if p.BodyShape != nil && !slices.Contains(o.BodyShapes, p.BodyShape.Type) {
			continue
		}
		if occasion != "" && occasion != "all" && o.Occasion != occasion {
			continue
		}
		matches = append(matches, OutfitMatch{Outfit: o, Score: OutfitScore(o, p)})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// OutfitScore is 70 plus 20 when the outfit suits the body shape and 10 when it suits
// the face shape, capped at 100.
func OutfitScore(o Outfit, p Profile) int {
	score := baseOutfitScore
	if p.BodyShape != nil && slices.Contains(o.BodyShapes, p.BodyShape.Type) {
		score += bodyMatchBonus
	}
	if p.FaceShape != nil && slices.Contains(o.FaceShapes, p.FaceShape.Type) {
		score += faceMatchBonus
	}
	if score > maxOutfitScore {
		score = maxOutfitScore
	}
	return score
}
