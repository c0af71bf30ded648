package utils

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/raushankrgupta/stylewise/analysis"
	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestOutfitPrompt(t *testing.T) {
	outfit, ok := analysis.FindOutfit("1")
	if !ok {
		t.Fatal("catalog outfit 1 missing")
	}
	prompt := OutfitPrompt(outfit, analysis.Profile{
		BodyShape: &analysis.BodyShapeResult{Type: analysis.Hourglass},
	})

	assert.Contains(t, prompt, "Outfit: Classic Business Professional (work)")
	assert.Contains(t, prompt, "navy Tailored Blazer (blazer)")
	assert.Contains(t, prompt, "Person: hourglass body shape")

	assert.Contains(t, OutfitPrompt(outfit, analysis.Profile{}), "Person: not analyzed")
}

func TestRenderOutfitNeedsKey(t *testing.T) {
	_, err := NewGeminiRenderer("", "model").RenderOutfit(context.Background(), nil, analysis.Outfit{}, analysis.Profile{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestIsQuotaError(t *testing.T) {
	assert.True(t, isQuotaError(&googleapi.Error{Code: http.StatusTooManyRequests}))
	assert.True(t, isQuotaError(errors.New("rpc error: RESOURCE_EXHAUSTED")))
	assert.False(t, isQuotaError(errors.New("connection reset")))
}

func TestImageFormat(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")
	assert.Equal(t, "png", imageFormat(png))
	assert.Equal(t, "jpeg", imageFormat([]byte("unknown")))
}
