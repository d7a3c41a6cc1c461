package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthHandler provides a liveness check endpoint. When Ping is set the
// database is probed too and a failure reports 503.
type HealthHandler struct {
	Ping func(ctx context.Context) error
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]string{"status": "ok"}
	if h.Ping == nil {
		writeJSON(w, r, http.StatusOK, res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.Ping(ctx); err != nil {
		res["status"] = "degraded"
		res["database"] = err.Error()
		writeJSON(w, r, http.StatusServiceUnavailable, res)
		return
	}

	res["database"] = "ok"
	writeJSON(w, r, http.StatusOK, res)
}
