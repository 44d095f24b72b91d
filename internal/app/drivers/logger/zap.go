package logger

import (
	"log"
	"mindhaven-service/internal/app/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger builds the JSON service logger. Production also writes to the
// configured log files.
func NewZapLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *zap.Logger {
	cfg := zap.NewProductionConfig()

	level, err := zapcore.ParseLevel(driverConfig.Logger.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Development = internalConfig.App.Env == "development"
	cfg.Sampling = nil

	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	if internalConfig.App.Env == "production" {
		cfg.OutputPaths = append(cfg.OutputPaths, driverConfig.Logger.OutputFileName)
		cfg.ErrorOutputPaths = append(cfg.ErrorOutputPaths, driverConfig.Logger.OutputErrorFileName)
	}

	cfg.InitialFields = map[string]interface{}{
		"service": "mindhaven-service",
		"env":     internalConfig.App.Env,
	}

	zapLogger, err := cfg.Build()
	if err != nil {
		log.Fatalf("Error while initializing zap logger: %v", err)
	}
	return zapLogger
}
