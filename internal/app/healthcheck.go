package app

import (
	"context"
	"net/http"
	"time"

	"github.com/metinatakli/seat-inventory/api"
	"github.com/metinatakli/seat-inventory/internal/vcs"
)

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "UP"
	if !app.dependenciesReachable(r.Context()) {
		status = "DEGRADED"
	}

	systemInfo := api.SystemInfo{
		Version:     vcs.Version(),
		Environment: app.config.Env,
	}

	resp := api.HealthcheckResponse{
		Status:     status,
		SystemInfo: systemInfo,
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) dependenciesReachable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	logger := app.logger

	if app.db != nil {
		if err := app.db.Ping(ctx); err != nil {
			logger.Warn("healthcheck: database unreachable", "error", err)
			return false
		}
	}

	if app.redis != nil {
		if err := app.redis.Ping(ctx).Err(); err != nil {
			logger.Warn("healthcheck: redis unreachable", "error", err)
			return false
		}
	}

	return true
}
