package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RespondJSON sends a JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// headers are already sent, nothing left to report to the client
		zap.L().Error("encoding JSON response", zap.Error(err))
	}
}

// RespondError sends a JSON error response and records the message in the request log.
func RespondError(w http.ResponseWriter, logger *strings.Builder, message string, status int) {
	if logger != nil {
		AddToLogMessage(logger, message)
	}
	RespondJSON(w, status, map[string]string{"error": message})
}

// RespondErr reports err with the status StatusFor picks for it.
func RespondErr(w http.ResponseWriter, logger *strings.Builder, err error) {
	RespondError(w, logger, err.Error(), StatusFor(err))
}

// Presigner turns a stored object key into a temporary download URL.
type Presigner interface {
	Presign(ctx context.Context, objectKey string) (string, error)
}

// PresignImageKeys generates presigned URLs for a slice of image keys/URLs.
// Entries that are already http(s) URLs are kept, and keys that fail to sign fall back to the key.
func PresignImageKeys(ctx context.Context, p Presigner, images []string) []string {
	presignedURLs := make([]string, 0, len(images))
	for _, img := range images {
		if p == nil || strings.HasPrefix(img, "http") {
			presignedURLs = append(presignedURLs, img)
			continue
		}
		if url, err := p.Presign(ctx, img); err == nil {
			presignedURLs = append(presignedURLs, url)
		} else {
			presignedURLs = append(presignedURLs, img)
		}
	}
	return presignedURLs
}

// LatencyMiddleware logs the duration of each request
func LatencyMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("latency",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
