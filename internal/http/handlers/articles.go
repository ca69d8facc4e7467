package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apierrors "github.com/vpolunina/news-bias-dashboard/internal/errors"
	"github.com/vpolunina/news-bias-dashboard/internal/models"
)

// ListArticles — GET /articles.
// Query: limit, offset, category, country, source (списки), since, until (RFC3339).
func (h *Handlers) ListArticles(w http.ResponseWriter, r *http.Request) {
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

	filter := models.ArticleFilter{
		Categories: queryList(r, "category"),
		Countries:  queryList(r, "country"),
		Sources:    queryList(r, "source"),
	}

	if v := r.URL.Query().Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			apierrors.WriteError(w, r, errInvalidArgument("invalid since"))
			return
		}
		filter.Since = t
	}
	if v := r.URL.Query().Get("until"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			apierrors.WriteError(w, r, errInvalidArgument("invalid until"))
			return
		}
		filter.Until = t
	}

	page, err := h.svc.ListArticles(r.Context(), filter, models.PageRequest{Limit: limit, Offset: offset})
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

// GetArticleByID — GET /articles/{id}.
func (h *Handlers) GetArticleByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, errInvalidArgument("invalid article id"))
		return
	}

	article, err := h.svc.ArticleByID(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, articleToResponse(*article))
}

// RefreshArticles — POST /articles/refresh: административный проход инжеста.
func (h *Handlers) RefreshArticles(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.RefreshArticles(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"ingested": n})
}
