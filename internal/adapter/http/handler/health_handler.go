package handler

import (
	"net/http"
	"os"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	dataDir string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(dataDir string) *HealthHandler {
	return &HealthHandler{dataDir: dataDir}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if the data directory is usable.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if err := os.MkdirAll(h.dataDir, 0o755); err != nil {
		writeError(w, http.StatusServiceUnavailable, "data directory unavailable", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"storage": "ok",
	})
}
