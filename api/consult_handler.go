package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/stylewise/analysis"
	"github.com/raushankrgupta/stylewise/models"
	"github.com/raushankrgupta/stylewise/utils"
)

const defaultHistoryLimit = 20

// ConsultRequest is a free-text styling question
type ConsultRequest struct {
	Message string `json:"message"`
}

// GreetingHandler returns the consultant's opening message
func (s *Server) GreetingHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		utils.RespondErr(w, nil, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"response": analysis.Greeting(user.Name, user.Profile()),
	})
}

// ConsultHandler answers a styling question and records the exchange
func (s *Server) ConsultHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(s.log, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Consultant API]")

	var req ConsultRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	user, err := s.currentUser(r)
	if err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	reply, err := analysis.Consult(req.Message, user.Profile())
	if err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Topic %s, template %s", reply.Topic, reply.TemplateID))

	record := &models.Consultation{
		UserID:     user.ID.Hex(),
		Message:    req.Message,
		Topic:      reply.Topic,
		TemplateID: reply.TemplateID,
		Response:   reply.Response,
	}
	if err := s.store.SaveConsultation(r.Context(), record); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to save consultation: %v", err))
	}

	utils.RespondJSON(w, http.StatusOK, reply)
}

// ConsultHistoryHandler lists the user's recent consultations, newest first
func (s *Server) ConsultHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondErr(w, nil, err)
		return
	}
	history, err := s.store.ListConsultations(r.Context(), userID, queryInt(r, "limit", defaultHistoryLimit))
	if err != nil {
		utils.RespondErr(w, nil, err)
		return
	}
	if history == nil {
		history = []models.Consultation{}
	}
	utils.RespondJSON(w, http.StatusOK, history)
}
