package api

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/raushankrgupta/stylewise/analysis"
	"github.com/raushankrgupta/stylewise/utils"
)

const reportSubject = "Your StyleWise report"

// AdviceHandler renders the advice blocks for the stored profile
func (s *Server) AdviceHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		utils.RespondErr(w, nil, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, analysis.SelectAdvice(user.Profile()))
}

// OutfitsHandler ranks catalog outfits for the user, optionally for one occasion
func (s *Server) OutfitsHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		utils.RespondErr(w, nil, err)
		return
	}
	matches := analysis.SuggestOutfits(user.Profile(), r.URL.Query().Get("occasion"))
	if matches == nil {
		matches = []analysis.OutfitMatch{}
	}
	utils.RespondJSON(w, http.StatusOK, matches)
}

func (s *Server) ColorsHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, analysis.ColorSeasons())
}

// EmailReportHandler mails the advice report to the user's address
func (s *Server) EmailReportHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(s.log, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Email Report API]")

	if s.mailer == nil {
		utils.RespondErr(w, &logMessageBuilder, fmt.Errorf("%w: email", utils.ErrNotConfigured))
		return
	}

	user, err := s.currentUser(r)
	if err != nil {
		utils.RespondErr(w, &logMessageBuilder, err)
		return
	}

	advice := analysis.SelectAdvice(user.Profile())
	if err := s.mailer.SendEmail(r.Context(), user.Name, user.Email, reportSubject, advice.Text(), reportHTML(user.Name, advice)); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Error sending report: %v", err))
		if utils.StatusFor(err) == http.StatusServiceUnavailable {
			utils.RespondErr(w, nil, err)
		} else {
			utils.RespondError(w, nil, "Failed to send report", http.StatusBadGateway)
		}
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Report sent to %s", user.Email))
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"sent": true, "complete": advice.Complete})
}

// reportHTML renders the advice blocks as a minimal HTML email body.
func reportHTML(name string, a analysis.Advice) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<p>Hi %s,</p>", html.EscapeString(name))
	for _, b := range a.Blocks {
		fmt.Fprintf(&sb, "<h3>%s</h3><ul>", html.EscapeString(b.Title))
		for _, line := range b.Lines {
			fmt.Fprintf(&sb, "<li>%s</li>", html.EscapeString(line))
		}
		sb.WriteString("</ul>")
	}
	return sb.String()
}
