package handler

import (
	"errors"
	"net/http"

	"github.com/bsglauncher/webui/internal/infra"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthHandler reports database reachability, the launcher host circuit
// state and the number of connected pages. A disabled database is healthy;
// an open host circuit is reported but does not fail the check.
func HealthHandler(pool *pgxpool.Pool, hostState func() string, wsClients func() int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{"status": "healthy", "database": "up"}
		if hostState != nil {
			body["host"] = hostState()
		}
		if wsClients != nil {
			body["ws_clients"] = wsClients()
		}

		err := infra.HealthCheck(r.Context(), pool)
		switch {
		case errors.Is(err, infra.ErrDatabaseDisabled):
			body["database"] = "disabled"
		case err != nil:
			body["status"] = "unhealthy"
			body["database"] = "down"
			body["error"] = err.Error()
			RespondJSON(w, http.StatusServiceUnavailable, body)
			return
		}
		RespondJSON(w, http.StatusOK, body)
	}
}
