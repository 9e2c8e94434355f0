package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry initializes Sentry error reporting from the SENTRY_DSN environment
// variable. With no DSN configured, reporting stays disabled and processing is
// unaffected.
func InitSentry(logger *slog.Logger) error {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		if logger != nil {
			logger.Debug("Sentry DSN not configured - error tracking disabled")
		}
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: os.Getenv("SENTRY_ENVIRONMENT"),
		Release:     os.Getenv("SENTRY_RELEASE"),
	})
	if err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}

	if logger != nil {
		logger.Info("Sentry initialized")
	}
	return nil
}

// CaptureException reports an error to Sentry with optional context values.
// A nil error is ignored.
func CaptureException(err error, context map[string]any, logger *slog.Logger) {
	if err == nil {
		return
	}

	if context != nil {
		sentry.ConfigureScope(func(scope *sentry.Scope) {
			for key, value := range context {
				scope.SetContext(key, sentry.Context(map[string]any{"value": value}))
			}
		})
	}

	sentry.CaptureException(err)

	if logger != nil {
		logger.Debug("Exception captured in Sentry", "error", err.Error())
	}
}

// FlushSentry waits for queued events to be sent. Call before process exit.
func FlushSentry(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}
