package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
)

// mediastackMaxLimit — жёсткий потолок размера страницы у провайдера.
const mediastackMaxLimit = 100

// MediastackClient — клиент новостного API Mediastack.
type MediastackClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewMediastack создаёт клиент. Если client == nil, используется
// http.DefaultClient: таймаут обязан задать вызывающий.
func NewMediastack(client *http.Client, baseURL, apiKey string) *MediastackClient {
	if client == nil {
		client = http.DefaultClient
	}

	return &MediastackClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// mediastackResponse — формат ответа GET /news.
type mediastackResponse struct {
	Pagination struct {
		Limit  int64 `json:"limit"`
		Offset int64 `json:"offset"`
		Count  int64 `json:"count"`
		Total  int64 `json:"total"`
	} `json:"pagination"`
	Data []mediastackArticle `json:"data"`
}

type mediastackArticle struct {
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Language    string `json:"language"`
	Country     string `json:"country"`
	PublishedAt string `json:"published_at"`
}

// Fetch запрашивает страницу статей у провайдера.
//
// Ошибки сети/таймаута и не-2xx статусы заворачиваются в ErrUnavailable:
// сбой провайдера — восстановимая ситуация, а не внутренняя ошибка.
func (m *MediastackClient) Fetch(ctx context.Context, q FetchQuery) (*Result, error) {
	const op = "ingest.mediastack.Fetch"

	limit := q.Limit
	if limit <= 0 || limit > mediastackMaxLimit {
		limit = mediastackMaxLimit
	}

	params := url.Values{}
	params.Set("access_key", m.apiKey)
	params.Set("limit", strconv.FormatInt(int64(limit), 10))
	params.Set("offset", strconv.FormatInt(int64(q.Offset), 10))
	params.Set("sort", "published_desc")
	if q.Keywords != "" {
		params.Set("keywords", q.Keywords)
	}
	if len(q.Categories) > 0 {
		params.Set("categories", strings.Join(q.Categories, ","))
	}
	if len(q.Countries) > 0 {
		params.Set("countries", strings.Join(q.Countries, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/news?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: %w: status %d", op, ErrUnavailable, resp.StatusCode)
	}

	var payload mediastackResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: %w: decode: %w", op, ErrUnavailable, err)
	}

	now := time.Now().UTC()
	items := make([]models.Article, 0, len(payload.Data))
	for _, raw := range payload.Data {
		if raw.Title == "" || raw.URL == "" {
			continue
		}

		items = append(items, models.Article{
			Title:       raw.Title,
			Description: raw.Description,
			URL:         raw.URL,
			ImageURL:    raw.Image,
			Source:      raw.Source,
			Category:    strings.ToLower(raw.Category),
			Country:     strings.ToLower(raw.Country),
			PublishedAt: parsePublishedAt(raw.PublishedAt, now),
			FetchedAt:   now,
		})
	}

	return &Result{Items: items, Total: payload.Pagination.Total}, nil
}

// parsePublishedAt разбирает отметку публикации провайдера.
// published_at обязана быть заполнена у каждой статьи, поэтому
// неразборчивое значение заменяется временем загрузки.
func parsePublishedAt(raw string, fallback time.Time) time.Time {
	layouts := []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02T15:04:05-0700",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}

	return fallback
}

var _ Source = (*MediastackClient)(nil)
