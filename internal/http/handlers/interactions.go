package handlers

import (
	"net/http"

	"github.com/google/uuid"

	apierrors "github.com/vpolunina/news-bias-dashboard/internal/errors"
	"github.com/vpolunina/news-bias-dashboard/internal/models"
)

// CreateInteraction — POST /interactions.
// Тело: {"article_id": "<uuid>", "kind": "view|click|save|like|dislike|share"}.
func (h *Handlers) CreateInteraction(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRequest(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	var req InteractionCreateRequest
	if err := decodeStrict(r, &req); err != nil {
		apierrors.WriteError(w, r, errInvalidArgument("invalid body"))
		return
	}

	articleID, err := uuid.Parse(req.ArticleID)
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument("invalid article_id"))
		return
	}

	kind, err := models.ParseInteractionKind(req.Kind)
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument("invalid kind"))
		return
	}

	created, err := h.svc.RecordInteraction(r.Context(), id, articleID, kind)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, interactionToResponse(created))
}
