package utils

import (
	"context"
	"mindhaven-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// LogBusinessEvent records a domain milestone such as a signup.
func LogBusinessEvent(logger *zap.Logger, event string, requestID string, fields ...zap.Field) {
	logger.Info("Business event occurred", eventFields(requestID, zap.String("business_event", event), fields)...)
}

// LogSecurityEvent records a refused or suspicious access attempt.
func LogSecurityEvent(logger *zap.Logger, event string, requestID string, severity string, fields ...zap.Field) {
	fields = append([]zap.Field{zap.String("severity", severity)}, fields...)
	logger.Warn("Security event detected", eventFields(requestID, zap.String("security_event", event), fields)...)
}

func eventFields(requestID string, event zap.Field, rest []zap.Field) []zap.Field {
	fields := make([]zap.Field, 0, len(rest)+2)
	fields = append(fields, zap.String(constvars.LoggingRequestIDKey, requestID), event)
	return append(fields, rest...)
}

func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID
}
