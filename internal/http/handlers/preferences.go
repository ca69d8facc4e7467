package handlers

import (
	"net/http"

	apierrors "github.com/vpolunina/news-bias-dashboard/internal/errors"
	"github.com/vpolunina/news-bias-dashboard/internal/models"
)

// GetPreferences — GET /preferences.
// Первый запрос незнакомой идентичности создаёт и возвращает пустую запись.
func (h *Handlers) GetPreferences(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRequest(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	pref, err := h.svc.GetPreferences(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, preferenceToResponse(pref))
}

// UpdatePreferences — PUT /preferences: полная замена явных списков.
func (h *Handlers) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRequest(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var req PreferenceUpdateRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument("invalid body"))
		return
	}

	saved, err := h.svc.UpdatePreferences(r.Context(), models.Preference{
		Identity:        id,
		Interests:       req.Interests,
		Categories:      req.Categories,
		Sources:         req.Sources,
		Countries:       req.Countries,
		ExcludedSources: req.ExcludedSources,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, preferenceToResponse(saved))
}
