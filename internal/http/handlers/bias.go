package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/vpolunina/news-bias-dashboard/internal/errors"
)

// ListBiasSources — GET /bias-sources.
func (h *Handlers) ListBiasSources(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListBiasSources(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := make([]BiasSourceResponse, 0, len(items))
	for _, b := range items {
		out = append(out, biasSourceToResponse(b))
	}

	writeJSON(w, http.StatusOK, map[string][]BiasSourceResponse{"sources": out})
}

// GetBiasSource — GET /bias-sources/{name}.
// Имя сопоставляется регистронезависимо.
func (h *Handlers) GetBiasSource(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		apierrors.WriteError(w, r, errInvalidArgument("name is required"))
		return
	}

	src, err := h.svc.BiasSourceByName(r.Context(), name)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, biasSourceToResponse(*src))
}
