package utils

import (
	"strings"

	"go.uber.org/zap"
)

func AddToLogMessage(logMessagesBuilder *strings.Builder, strToAdd string) {

	if logMessagesBuilder.Len() == logMessagesBuilder.Cap() {

		logMessagesBuilder.Grow(len(strToAdd))
	}

	logMessagesBuilder.WriteString(strToAdd)
	logMessagesBuilder.WriteString(";")
	logMessagesBuilder.WriteString("\n")
}

// FlushLogMessage writes a request's accumulated log lines as one entry.
func FlushLogMessage(logger *zap.Logger, logMessagesBuilder *strings.Builder) {
	if logger == nil || logMessagesBuilder.Len() == 0 {
		return
	}
	logger.Info("request", zap.String("trace", strings.TrimSpace(logMessagesBuilder.String())))
}
