package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/raushankrgupta/stylewise/utils"
)

type contextKey string

const userIDKey contextKey = "user_id"

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authMiddleware requires a valid bearer token and stores its user id on the request context.
func (s *Server) authMiddleware(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			utils.RespondError(w, nil, "Authorization header missing or invalid", http.StatusUnauthorized)
			return
		}
		userID, err := s.tokens.ValidateToken(token)
		if err != nil {
			utils.RespondErr(w, nil, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

// GetUserIDFromContext returns the id authMiddleware attached to the request.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", utils.ErrUnauthorized
	}
	return userID, nil
}
