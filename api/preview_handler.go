package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/stylewise/analysis"
	"github.com/raushankrgupta/stylewise/models"
	"github.com/raushankrgupta/stylewise/utils"
)

const (
	renderTimeout   = 5 * time.Minute
	generatedFolder = "generated_images"
)

// PreviewRequest picks a catalog outfit and, optionally, a stored photo other than the profile photo
type PreviewRequest struct {
	OutfitID string `json:"outfit_id"`
	ImageKey string `json:"image_key"`
}

// OutfitPreviewHandler renders the user wearing a catalog outfit
func (s *Server) OutfitPreviewHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(s.log, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Outfit Preview API]")

	if s.renderer == nil || s.images == nil {
		utils.RespondErr(w, &logMessageBuilder, fmt.Errorf("%w: outfit previews", utils.ErrNotConfigured))
		return
	}

	var req PreviewRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}
	if err := requireField(req.OutfitID, "outfit_id"); err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}
	outfit, ok := analysis.FindOutfit(req.OutfitID)
	if !ok {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Outfit %q not found", req.OutfitID), http.StatusNotFound)
		return
	}

	user, err := s.currentUser(r)
	if err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}
	userID := user.ID.Hex()

	personKey := req.ImageKey
	if personKey == "" {
		personKey = user.PhotoKey
	}
	if personKey == "" {
		utils.RespondError(w, &logMessageBuilder, "Upload a profile photo first", http.StatusBadRequest)
		return
	}
	// only the user's own uploads may be sent to the renderer
	if !strings.HasPrefix(personKey, photoFolder+"/"+userID+"/") {
		utils.RespondError(w, &logMessageBuilder, "image_key does not belong to this user", http.StatusForbidden)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Preview Request: Outfit=%s, Image=%s", outfit.ID, personKey))

	personImage, err := s.images.Download(r.Context(), personKey)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Error downloading photo: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Could not read the stored photo", http.StatusInternalServerError)
		return
	}

	renderCtx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	generated, err := s.renderer.RenderOutfit(renderCtx, personImage, outfit, user.Profile())
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to render preview: %v", err))
		if errors.Is(err, utils.ErrRateLimited) || errors.Is(err, utils.ErrNotConfigured) {
			utils.RespondErr(w, nil, err)
		} else {
			utils.RespondError(w, nil, "Failed to generate preview image", http.StatusBadGateway)
		}
		return
	}

	objectKey := fmt.Sprintf("%s/%s/%s%s", generatedFolder, userID, uuid.NewString(), extensionFor(generated.MIMEType))
	if _, err := s.images.Upload(r.Context(), bytes.NewReader(generated.Data), objectKey, generated.MIMEType); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to upload generated image: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to store generated image", http.StatusInternalServerError)
		return
	}

	preview := &models.OutfitPreview{
		UserID:            userID,
		OutfitID:          outfit.ID,
		PersonImageKey:    personKey,
		GeneratedImageKey: objectKey,
		Status:            models.PreviewCompleted,
	}
	if err := s.store.SavePreview(r.Context(), preview); err != nil {
		// the image is already stored, so the caller still gets it
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to save preview record: %v", err))
	}

	preview.GeneratedImageURL, _ = s.images.Presign(r.Context(), objectKey)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"result":  preview.GeneratedImageURL,
		"preview": preview,
	})
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
