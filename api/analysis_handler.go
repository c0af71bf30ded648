package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/raushankrgupta/stylewise/analysis"
	"github.com/raushankrgupta/stylewise/utils"
)

// BMIRequest is a raw height and weight in one unit system
type BMIRequest struct {
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
	Unit   string  `json:"unit"`
}

// BMIHandler classifies BMI and stores the result on the profile
func (s *Server) BMIHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(s.log, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[BMI API]")

	var req BMIRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}
	unit, err := analysis.ParseUnitSystem(req.Unit)
	if err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}
	if req.Height <= 0 || req.Weight <= 0 {
		utils.RespondError(w, &logMessageBuilder, "height and weight must be greater than 0", http.StatusBadRequest)
		return
	}

	user, err := s.currentUser(r)
	if err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	result, err := analysis.ClassifyBMI(req.Height, req.Weight, unit)
	if err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("BMI %.1f (%s)", result.Value, result.Category))

	user.BMI = &result
	user.Measurements.Height = req.Height
	user.Measurements.Weight = req.Weight
	user.Measurements.Unit = unit
	user.Measurements.UpdatedAt = time.Now()
	if err := s.store.UpdateUser(r.Context(), user); err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

// BodyShapeHandler classifies body shape from bust, waist and hips
func (s *Server) BodyShapeHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(s.log, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Body Shape API]")

	var m analysis.BodyMeasurements
	if err := decodeJSON(r, &m); err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}
	unit, err := analysis.ParseUnitSystem(string(m.Unit))
	if err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}
	m.Unit = unit
	if err := m.Validate(); err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	user, err := s.currentUser(r)
	if err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	result, err := analysis.ClassifyBodyShape(m)
	if err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Body shape %s", result.Type))

	user.BodyShape = &result
	user.Measurements.Body = &m
	user.Measurements.UpdatedAt = time.Now()
	if err := s.store.UpdateUser(r.Context(), user); err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"result":      result,
		"description": analysis.BodyShapeDescription(result.Type, analysis.ParseGender(user.Gender)),
		"advice":      analysis.BodyShapeAdvice(result.Type, analysis.ParseGender(user.Gender)),
	})
}

// FaceShapeHandler classifies face shape from four facial measurements
func (s *Server) FaceShapeHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(s.log, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Face Shape API]")

	var m analysis.FaceMeasurements
	if err := decodeJSON(r, &m); err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}
	if err := m.Validate(); err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	user, err := s.currentUser(r)
	if err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	result, err := analysis.ClassifyFaceShape(m)
	if err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Face shape %s", result.Type))

	user.FaceShape = &result
	user.Measurements.Face = &m
	user.Measurements.UpdatedAt = time.Now()
	if err := s.store.UpdateUser(r.Context(), user); err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"result":      result,
		"description": analysis.FaceShapeDescription(result.Type),
		"advice":      analysis.FaceShapeAdvice(result.Type),
	})
}
