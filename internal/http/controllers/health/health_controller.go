// Package health exposes the liveness/readiness endpoint.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Zee-2005/safara-sub000/internal/store/core"
)

type response struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// Controller handles GET /healthz. Readiness pings the repository with
// a short deadline so a dead database flips the probe.
type Controller struct {
	Repo core.ApplicationRepository
}

func (c *Controller) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := response{Status: "ok", Store: "ok"}
	status := http.StatusOK
	if err := c.Repo.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Store = "unreachable"
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
