package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/raushankrgupta/stylewise/analysis"
	"github.com/raushankrgupta/stylewise/utils"
)

const (
	maxPhotoBytes = 10 << 20
	photoFolder   = "user_images"
)

// UpdateProfileRequest carries the editable profile fields; nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name             *string   `json:"name"`
	Gender           *string   `json:"gender"`
	StylePreferences *[]string `json:"style_preferences"`
	FitnessGoals     *[]string `json:"fitness_goals"`
	FavoriteColors   *[]string `json:"favorite_colors"`
	Occasions        *[]string `json:"occasions"`
	Brands           *[]string `json:"brands"`
}

// GetProfileHandler returns the current user record
func (s *Server) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		utils.RespondErr(w, nil, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, user)
}

// UpdateProfileHandler edits name, gender and preferences
func (s *Server) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(s.log, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Update Profile API]")

	var req UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	user, err := s.currentUser(r)
	if err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	if req.Name != nil {
		if err := requireField(*req.Name, "name"); err != nil {
			utils.RespondErr(w, &logMessageBuilder, err)
			return
		}
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Gender != nil {
		user.Gender = string(analysis.ParseGender(*req.Gender))
	}
	if req.StylePreferences != nil {
		for _, id := range *req.StylePreferences {
			if _, ok := analysis.FindArchetype(id); !ok {
				utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Unknown style %q", id), http.StatusBadRequest)
				return
			}
		}
		user.Preferences.StylePreferences = *req.StylePreferences
	}
	if req.FitnessGoals != nil {
		user.Preferences.FitnessGoals = *req.FitnessGoals
	}
	if req.FavoriteColors != nil {
		user.Preferences.FavoriteColors = *req.FavoriteColors
	}
	if req.Occasions != nil {
		user.Preferences.Occasions = *req.Occasions
	}
	if req.Brands != nil {
		user.Preferences.Brands = *req.Brands
	}

	if err := s.store.UpdateUser(r.Context(), user); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Error saving profile: %v", err))
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "Profile updated successfully")
	utils.RespondJSON(w, http.StatusOK, user)
}

// UploadPhotoHandler stores a full-length photo used for outfit previews
func (s *Server) UploadPhotoHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(s.log, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Upload Photo API]")

	if s.images == nil {
		utils.RespondErr(w, &logMessageBuilder, fmt.Errorf("%w: image storage", utils.ErrNotConfigured))
		return
	}

	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Error parsing form data", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	user, err := s.currentUser(r)
	if err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		utils.RespondError(w, &logMessageBuilder, "Uploaded file must be an image", http.StatusBadRequest)
		return
	}

	objectKey := fmt.Sprintf("%s/%s/%s%s", photoFolder, user.ID.Hex(), uuid.NewString(), strings.ToLower(filepath.Ext(header.Filename)))
	if _, err := s.images.Upload(r.Context(), file, objectKey, contentType); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Error uploading photo: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Error saving photo", http.StatusInternalServerError)
		return
	}

	user.PhotoKey = objectKey
	if err := s.store.UpdateUser(r.Context(), user); err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	url, _ := s.images.Presign(r.Context(), objectKey)
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Stored photo %s", objectKey))
	utils.RespondJSON(w, http.StatusCreated, map[string]string{"image_key": objectKey, "image_url": url})
}
