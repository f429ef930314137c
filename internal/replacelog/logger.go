// Package replacelog provides structured logging for search/replace operations.
package replacelog

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap logger with typed helpers for the events this
// tool cares about.
type Logger struct {
	zap *zap.Logger
}

// New creates a Logger that writes to logPath. If logPath is empty,
// logging is disabled. Output is JSON in both modes; development selects
// zap's development encoder config, otherwise the production one is used.
func New(logPath string, development bool) (*Logger, error) {
	if logPath == "" {
		return &Logger{zap: zap.NewNop()}, nil
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	var encoderConfig zapcore.EncoderConfig
	if development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		zapcore.InfoLevel,
	)

	return &Logger{zap: zap.New(core)}, nil
}

// Close syncs the logger. Should be called on shutdown.
func (l *Logger) Close() error {
	return l.zap.Sync()
}

// SearchExecuted logs a completed search backend run.
func (l *Logger) SearchExecuted(backend string, matchCount int, duration time.Duration, err error) {
	if err != nil {
		l.zap.Info("search executed",
			zap.String("backend", backend),
			zap.Int("matches", matchCount),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}
	l.zap.Info("search executed",
		zap.String("backend", backend),
		zap.Int("matches", matchCount),
		zap.Duration("duration", duration),
	)
}

// ReplaceExecuted logs a completed replace operation.
func (l *Logger) ReplaceExecuted(scope string, filesChanged int, duration time.Duration, err error) {
	if err != nil {
		l.zap.Info("replace executed",
			zap.String("scope", scope),
			zap.Int("files_changed", filesChanged),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}
	l.zap.Info("replace executed",
		zap.String("scope", scope),
		zap.Int("files_changed", filesChanged),
		zap.Duration("duration", duration),
	)
}

// ActionDispatched logs a single action being dispatched through the bus.
func (l *Logger) ActionDispatched(actionType string) {
	l.zap.Debug("action dispatched", zap.String("action", actionType))
}

// Error logs an error.
func (l *Logger) Error(msg string, err error) {
	l.zap.Error(msg, zap.Error(err))
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, fields...)
}
