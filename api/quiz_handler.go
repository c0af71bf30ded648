package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/stylewise/analysis"
	"github.com/raushankrgupta/stylewise/utils"
)

// QuizRequest maps question id to the chosen option value
type QuizRequest struct {
	Answers analysis.Answers `json:"answers"`
}

// QuizResponse is the ranked result of a submitted quiz
type QuizResponse struct {
	Scores     []analysis.StyleScore `json:"scores"`
	TopStyles  []string              `json:"top_styles"`
	Archetypes []analysis.Archetype  `json:"archetypes"`
}

// GetQuizHandler returns the quiz and the archetype catalog for the user's gender
func (s *Server) GetQuizHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		utils.RespondErr(w, nil, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"questions":  analysis.QuizQuestions(),
		"archetypes": analysis.Archetypes(analysis.ParseGender(user.Gender)),
	})
}

// SubmitQuizHandler scores the answers and saves the top styles as preferences
func (s *Server) SubmitQuizHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(s.log, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Style Quiz API]")

	var req QuizRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	user, err := s.currentUser(r)
	if err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	catalog := analysis.Archetypes(analysis.ParseGender(user.Gender))
	scores, err := analysis.ScoreStyles(req.Answers, analysis.QuizQuestions(), catalog)
	if err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}
	top := analysis.TopStyles(scores, analysis.TopStyleCount)
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Top styles: %s", strings.Join(top, ", ")))

	user.Preferences.StylePreferences = top
	if err := s.store.UpdateUser(r.Context(), user); err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	archetypes := make([]analysis.Archetype, 0, len(top))
	for _, id := range top {
		if a, ok := analysis.FindArchetype(id); ok {
			archetypes = append(archetypes, a)
		}
	}
	utils.RespondJSON(w, http.StatusOK, QuizResponse{Scores: scores, TopStyles: top, Archetypes: archetypes})
}
