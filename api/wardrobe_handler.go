package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/stylewise/models"
	"github.com/raushankrgupta/stylewise/utils"
)

const wardrobeFolder = "wardrobe"

// ImportRequest names a retailer product page
type ImportRequest struct {
	URL string `json:"url"`
}

// ImportWardrobeHandler scrapes a product page and files it in the user's wardrobe
func (s *Server) ImportWardrobeHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(s.log, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Wardrobe Import API]")

	if s.importer == nil {
		utils.RespondErr(w, &logMessageBuilder, fmt.Errorf("%w: product import", utils.ErrNotConfigured))
		return
	}

	// Support both Query Params and JSON Body
	productURL := r.URL.Query().Get("url")
	if productURL == "" {
		var req ImportRequest
		if err := decodeJSON(r, &req); err != nil {
			utils.RespondErr(w, &logMessageBuilder, err)
			return
		}
		productURL = req.URL
	}
	if err := requireField(productURL, "url"); err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Importing URL: %s", productURL))
	product, err := s.importer.Import(r.Context(), productURL)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Import failed: %v", err))
		if status := utils.StatusFor(err); status != http.StatusInternalServerError {
			utils.RespondErr(w, nil, err)
		} else {
			utils.RespondError(w, nil, fmt.Sprintf("Import failed: %v", err), http.StatusBadGateway)
		}
		return
	}

	item := models.NewWardrobeItem(userID, product)
	if s.mirror != nil && len(item.ImageKeys) > 0 {
		// store our own copies; remote retailer URLs expire or get hotlink-blocked
		if keys := s.mirror.Mirror(r.Context(), item.ImageKeys, wardrobeFolder+"/"+userID); len(keys) > 0 {
			item.ImageKeys = keys
		}
	}

	if err := s.store.SaveItem(r.Context(), item); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to save wardrobe item: %v", err))
		utils.RespondErr(w, nil, err)
		return
	}

	item.ImageURLs = utils.PresignImageKeys(r.Context(), s.presigner(), item.ImageKeys)
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Filed %q as %s", item.Title, item.Category))
	utils.RespondJSON(w, http.StatusCreated, item)
}

// WardrobeHandler lists the user's wardrobe, newest first
func (s *Server) WardrobeHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondErr(w, nil, err)
		return
	}

	items, err := s.store.ListItems(r.Context(), userID)
	if err != nil {
		utils.RespondErr(w, nil, err)
		return
	}
	category := strings.ToLower(r.URL.Query().Get("category"))

	out := make([]models.WardrobeItem, 0, len(items))
	for _, item := range items {
		if category != "" && string(item.Category) != category {
			continue
		}
		item.ImageURLs = utils.PresignImageKeys(r.Context(), s.presigner(), item.ImageKeys)
		out = append(out, item)
	}
	utils.RespondJSON(w, http.StatusOK, out)
}

// presigner avoids handing PresignImageKeys a typed-nil interface.
func (s *Server) presigner() utils.Presigner {
	if s.images == nil {
		return nil
	}
	return s.images
}
