package app

import (
	"context"
	"time"

	"github.com/shandysiswandi/authgate/internal/pkg/router"
)

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (healthResponse) Message() string {
	return "health check"
}

// healthEndpoint reports liveness of the service and its backing stores.
func (a *App) healthEndpoint(r *router.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{
		Status: "ok",
		Checks: map[string]string{"database": "ok", "redis": "ok"},
	}

	if err := a.dbConn.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Checks["database"] = err.Error()
	}

	if err := a.cacheConn.Ping(ctx).Err(); err != nil {
		resp.Status = "degraded"
		resp.Checks["redis"] = err.Error()
	}

	return resp, nil
}
