package handlers

import (
	"net/http"

	apierrors "github.com/vpolunina/news-bias-dashboard/internal/errors"
	"github.com/vpolunina/news-bias-dashboard/internal/models"
)

// PersonalizedFeed — GET /feed/personalized.
//
// Идентичность — из заголовков X-User-Id/X-Session-Id (ровно один).
// Query: limit, offset и override-фильтры category/country/source —
// они сужают сохранённые предпочтения, но не расширяют их.
func (h *Handlers) PersonalizedFeed(w http.ResponseWriter, r *http.Request) {
	id, err := identityFromRequest(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	limit, err := queryInt32(r, "limit")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}
	offset, err := queryInt32(r, "offset")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	page, err := h.svc.PersonalizedFeed(r.Context(), id, models.FeedQuery{
		Limit:      limit,
		Offset:     offset,
		Categories: queryList(r, "category"),
		Countries:  queryList(r, "country"),
		Sources:    queryList(r, "source"),
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ArticleListResponse{
		Articles: articlesToResponse(page.Items),
		Pagination: PaginationResponse{
			Limit:  page.Limit,
			Offset: page.Offset,
			Total:  page.Total,
		},
	})
}
