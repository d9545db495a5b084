package monitoring

import (
	"log/slog"
	"os"
	"time"
)

// Logger provides structured logging with purpose-named helpers
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new JSON logger
func NewLogger() *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// RequestLogger logs HTTP request details
func (l *Logger) RequestLogger(method, path, ip, userAgent string, statusCode int, duration time.Duration) {
	l.Info("HTTP Request",
		"method", method,
		"path", path,
		"ip", ip,
		"user_agent", userAgent,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	)
}

// ScoringLogger logs a completed priority-scoring call
func (l *Logger) ScoringLogger(feedbackID string, score float64, level string, duration time.Duration, cacheHit bool) {
	l.Info("Score Computed",
		"feedback_id", feedbackID,
		"score", score,
		"level", level,
		"duration_ms", duration.Milliseconds(),
		"cache_hit", cacheHit,
	)
}

// ExperimentLogger logs a completed experiment evaluation
func (l *Logger) ExperimentLogger(experimentKey string, variants int, action string, hasWinner bool, duration time.Duration) {
	l.Info("Experiment Evaluated",
		"experiment_key", experimentKey,
		"variants", variants,
		"recommended_action", action,
		"has_winner", hasWinner,
		"duration_ms", duration.Milliseconds(),
	)
}

// APIErrorLogger logs API errors with request context
func (l *Logger) APIErrorLogger(err error, method, path, ip string, statusCode int) {
	l.Error("API Error",
		"error", err.Error(),
		"method", method,
		"path", path,
		"ip", ip,
		"status_code", statusCode,
	)
}

// SystemLogger logs system-level events
func (l *Logger) SystemLogger(event, details string) {
	l.Info("System Event",
		"event", event,
		"details", details,
		"uptime", time.Since(startTime).String(),
	)
}

// PerformanceLogger logs performance metrics
func (l *Logger) PerformanceLogger(metric string, value float64, unit string) {
	l.Info("Performance Metric",
		"metric", metric,
		"value", value,
		"unit", unit,
	)
}

var startTime = time.Now()
