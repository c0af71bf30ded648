package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/raushankrgupta/stylewise/analysis"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeneratedImage is the model's output and its MIME type.
type GeneratedImage struct {
	Data     []byte
	MIMEType string
}

// GeminiRenderer draws the user wearing a catalog outfit.
type GeminiRenderer struct {
	apiKey string
	model  string
}

func NewGeminiRenderer(apiKey, model string) *GeminiRenderer {
	return &GeminiRenderer{apiKey: apiKey, model: model}
}

// RenderOutfit sends the person photo and an outfit description to Gemini and
// returns the first image part of the reply.
func (g *GeminiRenderer) RenderOutfit(ctx context.Context, personImage []byte, outfit analysis.Outfit, profile analysis.Profile) (*GeneratedImage, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrNotConfigured)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	parts := []genai.Part{
		genai.Text(OutfitPrompt(outfit, profile)),
		genai.ImageData(imageFormat(personImage), personImage),
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		if isQuotaError(err) {
			return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no content generated")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
			return &GeneratedImage{Data: blob.Data, MIMEType: blob.MIMEType}, nil
		}
	}
	return nil, fmt.Errorf("model returned no image")
}

// OutfitPrompt describes the outfit and the wearer's analyzed features.
func OutfitPrompt(outfit analysis.Outfit, profile analysis.Profile) string {
	var items []string
	for _, it := range outfit.Items {
		items = append(items, fmt.Sprintf("%s %s (%s)", it.Color, it.Name, it.Type))
	}

	var features []string
	if profile.BodyShape != nil {
		features = append(features, fmt.Sprintf("%s body shape", profile.BodyShape.Type))
	}
	if profile.FaceShape != nil {
		features = append(features, fmt.Sprintf("%s face shape", profile.FaceShape.Type))
	}
	if len(features) == 0 {
		features = append(features, "not analyzed")
	}

	return fmt.Sprintf(`
Dress the person in the provided photo in the outfit below.
Keep the person's face, body proportions and pose unchanged; only replace the clothing.

Outfit: %s (%s)
Items: %s
Person: %s
`, outfit.Name, outfit.Occasion, strings.Join(items, ", "), strings.Join(features, ", "))
}

func imageFormat(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	default:
		return "jpeg"
	}
}

func isQuotaError(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "resource_exhausted")
}
