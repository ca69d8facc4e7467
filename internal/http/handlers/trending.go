package handlers

import (
	"net/http"

	apierrors "github.com/vpolunina/news-bias-dashboard/internal/errors"
)

// TrendingTopics — GET /trending.
func (h *Handlers) TrendingTopics(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt32(r, "limit")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	topics, err := h.svc.TrendingTopics(r.Context(), limit)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := make([]TrendingTopicResponse, 0, len(topics))
	for _, t := range topics {
		out = append(out, TrendingTopicResponse{Topic: t.Topic, Count: t.Count})
	}

	writeJSON(w, http.StatusOK, map[string][]TrendingTopicResponse{"topics": out})
}
