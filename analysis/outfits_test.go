package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outfitIDs(matches []OutfitMatch) []string {
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.Outfit.ID)
	}
	return ids
}

func TestSuggestOutfits(t *testing.T) {
	t.Run("no analysis keeps catalog order", func(t *testing.T) {
		got := SuggestOutfits(Profile{Gender: Female}, "")
		assert.Equal(t, []string{"1", "2", "3", "6"}, outfitIDs(got))
		for _, m := range got {
			assert.Equal(t, 70, m.Score)
		}
	})

	t.Run("ranked by score", func(t *testing.T) {
		p := Profile{
			Gender:    Female,
			BodyShape: &BodyShapeResult{Type: Hourglass},
			FaceShape: &FaceShapeResult{Type: Round},
		}
		got := SuggestOutfits(p, "all")
		require.Equal(t, []string{"2", "1", "3", "6"}, outfitIDs(got))
		assert.Equal(t, 100, got[0].Score)
		assert.Equal(t, 90, got[1].Score)
	})

	t.Run("body shape filter", func(t *testing.T) {
		got := SuggestOutfits(Profile{Gender: Male, BodyShape: &BodyShapeResult{Type: Apple}}, "")
		assert.Equal(t, []string{"4", "6"}, outfitIDs(got))
	})

	t.Run("occasion filter", func(t *testing.T) {
		got := SuggestOutfits(Profile{Gender: Female}, "work")
		assert.Equal(t, []string{"1"}, outfitIDs(got))
		assert.Empty(t, SuggestOutfits(Profile{Gender: Female}, "gala"))
	})
}

func TestOutfitScoreIsCapped(t *testing.T) {
	o := Outfit{BodyShapes: []BodyShape{Pear}, FaceShapes: []FaceShape{Oval}}
	p := Profile{BodyShape: &BodyShapeResult{Type: Pear}, FaceShape: &FaceShapeResult{Type: Oval}}
	assert.Equal(t, 100, OutfitScore(o, p))
	assert.Equal(t, 70, OutfitScore(o, Profile{}))
	assert.Equal(t, 80, OutfitScore(o, Profile{FaceShape: p.FaceShape}))
}

func TestFindOutfitAndSeasons(t *testing.T) {
	o, ok := FindOutfit("3")
	require.True(t, ok)
	assert.Equal(t, "evening", o.Occasion)

	_, ok = FindOutfit("99")
	assert.False(t, ok)

	seasons := ColorSeasons()
	require.Len(t, seasons, 4)
	assert.Equal(t, "Spring", seasons[0].Name)
}
