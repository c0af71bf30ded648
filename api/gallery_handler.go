package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/raushankrgupta/stylewise/models"
	"github.com/raushankrgupta/stylewise/store"
	"github.com/raushankrgupta/stylewise/utils"
)

// GalleryResponse represents the response structure for the preview gallery API
type GalleryResponse struct {
	Previews    []models.OutfitPreview `json:"previews"`
	Total       int64                  `json:"total"`
	CurrentPage int                    `json:"current_page"`
	TotalPages  int                    `json:"total_pages"`
}

// PreviewGalleryHandler pages through the user's completed outfit previews
func (s *Server) PreviewGalleryHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(s.log, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Preview Gallery API]")

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", store.DefaultPageSize)

	previews, total, err := s.store.ListPreviews(r.Context(), userID, page, limit)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Error listing previews: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to fetch data", http.StatusInternalServerError)
		return
	}

	for i := range previews {
		if previews[i].GeneratedImageKey == "" {
			continue
		}
		previews[i].GeneratedImageURL = previews[i].GeneratedImageKey
		if s.images != nil {
			if url, err := s.images.Presign(r.Context(), previews[i].GeneratedImageKey); err == nil {
				previews[i].GeneratedImageURL = url
			}
		}
	}

	// Ensure empty slice is returned as [] instead of null
	if previews == nil {
		previews = []models.OutfitPreview{}
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Returned %d of %d previews", len(previews), total))
	utils.RespondJSON(w, http.StatusOK, GalleryResponse{
		Previews:    previews,
		Total:       total,
		CurrentPage: page,
		TotalPages:  totalPages,
	})
}

// queryInt reads a positive integer query parameter, falling back to def.
func queryInt(r *http.Request, name string, def int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(name)); err == nil && v > 0 {
		return v
	}
	return def
}
