package handlers

import (
	"time"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
)

// Внешние схемы ответов стабильны: одно представление на сущность,
// независимо от внутреннего устройства моделей.

// ArticleResponse — внешнее представление статьи.
type ArticleResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Content     string   `json:"content,omitempty"`
	URL         string   `json:"url"`
	ImageURL    string   `json:"image_url,omitempty"`
	Source      string   `json:"source"`
	Category    string   `json:"category,omitempty"`
	Country     string   `json:"country,omitempty"`
	PublishedAt string   `json:"published_at"`
	BiasScore   *float64 `json:"bias_score"`
	Reliability *float64 `json:"reliability"`
	TopicID     string   `json:"topic_id,omitempty"`
}

// PaginationResponse — блок пагинации списочных ответов.
type PaginationResponse struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
	Total  int64 `json:"total"`
}

// ArticleListResponse — страница статей.
type ArticleListResponse struct {
	Articles   []ArticleResponse  `json:"articles"`
	Pagination PaginationResponse `json:"pagination"`
}

// PreferenceResponse — внешнее представление настроек идентичности.
type PreferenceResponse struct {
	Identity        IdentityResponse `json:"identity"`
	Interests       []string         `json:"interests"`
	Categories      []string         `json:"categories"`
	Sources         []string         `json:"sources"`
	Countries       []string         `json:"countries"`
	ExcludedSources []string         `json:"excluded_sources"`
	ReadingHistory  []string         `json:"reading_history"`
}

// IdentityResponse — внешнее представление идентичности.
type IdentityResponse struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// InteractionResponse — созданная запись журнала.
type InteractionResponse struct {
	ID        string           `json:"id"`
	Identity  IdentityResponse `json:"identity"`
	ArticleID string           `json:"article_id"`
	Kind      string           `json:"kind"`
	CreatedAt string           `json:"created_at"`
}

// BiasSourceResponse — запись таблицы предвзятости.
type BiasSourceResponse struct {
	Name        string   `json:"name"`
	Rating      string   `json:"rating"`
	BiasScore   *float64 `json:"bias_score"`
	Reliability float64  `json:"reliability"`
	Description string   `json:"description,omitempty"`
}

// TrendingTopicResponse — категория с объёмом активности.
type TrendingTopicResponse struct {
	Topic string `json:"topic"`
	Count int64  `json:"count"`
}

// PreferenceUpdateRequest — тело PUT /preferences.
// nil-срез означает «поле не менять» в PATCH-семантике; здесь же PUT —
// отсутствующее поле затирается пустым списком.
type PreferenceUpdateRequest struct {
	Interests       []string `json:"interests"`
	Categories      []string `json:"categories"`
	Sources         []string `json:"sources"`
	Countries       []string `json:"countries"`
	ExcludedSources []string `json:"excluded_sources"`
}

// InteractionCreateRequest — тело POST /interactions.
type InteractionCreateRequest struct {
	ArticleID string `json:"article_id"`
	Kind      string `json:"kind"`
}

func articleToResponse(a models.Article) ArticleResponse {
	return ArticleResponse{
		ID:          a.ID.String(),
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		URL:         a.URL,
		ImageURL:    a.ImageURL,
		Source:      a.Source,
		Category:    a.Category,
		Country:     a.Country,
		PublishedAt: a.PublishedAt.UTC().Format(time.RFC3339),
		BiasScore:   a.BiasScore,
		Reliability: a.Reliability,
		TopicID:     a.TopicID,
	}
}

func articlesToResponse(items []models.Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(items))
	for _, a := range items {
		out = append(out, articleToResponse(a))
	}
	return out
}

func identityToResponse(id models.Identity) IdentityResponse {
	return IdentityResponse{
		Kind: string(id.Kind()),
		ID:   id.ID(),
	}
}

func preferenceToResponse(p *models.Preference) PreferenceResponse {
	history := make([]string, 0, len(p.ReadingHistory))
	for _, id := range p.ReadingHistory {
		history = append(history, id.String())
	}

	return PreferenceResponse{
		Identity:        identityToResponse(p.Identity),
		Interests:       orEmpty(p.Interests),
		Categories:      orEmpty(p.Categories),
		Sources:         orEmpty(p.Sources),
		Countries:       orEmpty(p.Countries),
		ExcludedSources: orEmpty(p.ExcludedSources),
		ReadingHistory:  history,
	}
}

func interactionToResponse(in *models.Interaction) InteractionResponse {
	return InteractionResponse{
		ID:        in.ID.String(),
		Identity:  identityToResponse(in.Identity),
		ArticleID: in.ArticleID.String(),
		Kind:      string(in.Kind),
		CreatedAt: in.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func biasSourceToResponse(b models.BiasSource) BiasSourceResponse {
	resp := BiasSourceResponse{
		Name:        b.Name,
		Rating:      b.Rating,
		Reliability: b.Reliability,
		Description: b.Description,
	}
	if score, ok := b.Score(); ok {
		resp.BiasScore = &score
	}
	return resp
}

// orEmpty — JSON-дружелюбный срез: [] вместо null.
func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
