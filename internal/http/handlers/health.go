package handlers

import "net/http"

// Healthz — GET /healthz: живость процесса.
func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
