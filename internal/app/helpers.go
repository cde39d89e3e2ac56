package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/metinatakli/seat-inventory/internal/jsonutil"
)

type contextKey string

const loggerContextKey = contextKey("logger")

func (app *Application) contextSetLogger(r *http.Request, logger *slog.Logger) *http.Request {
	ctx := context.WithValue(r.Context(), loggerContextKey, logger)
	return r.WithContext(ctx)
}

// contextGetLogger returns the request scoped logger, falling back to the
// application logger outside of the middleware chain.
func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return jsonutil.ReadJSON(w, r, dst)
}

func (app *Application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	return jsonutil.WriteJSON(w, status, data, headers)
}

// holdTimeout converts the optional seconds of a request into a duration;
// zero selects the configured default.
func holdTimeout(seconds *int) time.Duration {
	if seconds == nil {
		return 0
	}

	return time.Duration(*seconds) * time.Second
}
