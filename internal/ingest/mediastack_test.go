package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Тесты клиента Mediastack на локальном httptest-сервере.

const mediastackBody = `{
  "pagination": {"limit": 25, "offset": 0, "count": 2, "total": 120},
  "data": [
    {
      "title": "Climate Summit Reached",
      "description": "World leaders agree",
      "url": "https://news.example/climate",
      "source": "BBC",
      "image": "https://img.example/c.jpg",
      "category": "General",
      "country": "GB",
      "published_at": "2025-01-10T12:30:00+00:00"
    },
    {
      "title": "",
      "description": "broken row without title",
      "url": "https://news.example/broken",
      "source": "CNN",
      "category": "general",
      "country": "us",
      "published_at": "2025-01-10T11:00:00+00:00"
    }
  ]
}`

// TestMediastack_Fetch_OK — параметры запроса и маппинг ответа.
func TestMediastack_Fetch_OK(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/news", r.URL.Path)

		q := r.URL.Query()
		require.Equal(t, "secret", q.Get("access_key"))
		require.Equal(t, "25", q.Get("limit"))
		require.Equal(t, "0", q.Get("offset"))
		require.Equal(t, "published_desc", q.Get("sort"))
		require.Equal(t, "climate", q.Get("keywords"))
		require.Equal(t, "general,science", q.Get("categories"))
		require.Equal(t, "us,gb", q.Get("countries"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(mediastackBody))
	}))
	defer srv.Close()

	client := NewMediastack(srv.Client(), srv.URL, "secret")

	res, err := client.Fetch(context.Background(), FetchQuery{
		Keywords:   "climate",
		Categories: []string{"general", "science"},
		Countries:  []string{"us", "gb"},
		Limit:      25,
	})
	require.NoError(t, err)
	require.Equal(t, int64(120), res.Total)
	require.Len(t, res.Items, 1, "rows without title/url are dropped")

	a := res.Items[0]
	require.Equal(t, "Climate Summit Reached", a.Title)
	require.Equal(t, "BBC", a.Source)
	require.Equal(t, "general", a.Category, "category is lowercased")
	require.Equal(t, "gb", a.Country, "country is lowercased")
	require.Equal(t, time.Date(2025, 1, 10, 12, 30, 0, 0, time.UTC), a.PublishedAt)
	require.False(t, a.FetchedAt.IsZero())
}

// TestMediastack_Fetch_Non2xx — не-2xx статус это ErrUnavailable.
func TestMediastack_Fetch_Non2xx(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewMediastack(srv.Client(), srv.URL, "secret")

	_, err := client.Fetch(context.Background(), FetchQuery{})
	require.ErrorIs(t, err, ErrUnavailable)
}

// TestMediastack_Fetch_BrokenBody — мусор в теле это ErrUnavailable.
func TestMediastack_Fetch_BrokenBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewMediastack(srv.Client(), srv.URL, "secret")

	_, err := client.Fetch(context.Background(), FetchQuery{})
	require.ErrorIs(t, err, ErrUnavailable)
}

// TestMediastack_Fetch_NetworkError — закрытый сервер это ErrUnavailable.
func TestMediastack_Fetch_NetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewMediastack(nil, srv.URL, "secret")

	_, err := client.Fetch(context.Background(), FetchQuery{})
	require.ErrorIs(t, err, ErrUnavailable)
}

// TestParsePublishedAt — поддерживаемые форматы и фолбэк.
func TestParsePublishedAt(t *testing.T) {
	t.Parallel()

	fallback := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	got := parsePublishedAt("2025-01-10T12:30:00+00:00", fallback)
	require.Equal(t, time.Date(2025, 1, 10, 12, 30, 0, 0, time.UTC), got)

	got = parsePublishedAt("2025-01-10T12:30:00", fallback)
	require.Equal(t, time.Date(2025, 1, 10, 12, 30, 0, 0, time.UTC), got)

	require.Equal(t, fallback, parsePublishedAt("garbage", fallback))
	require.Equal(t, fallback, parsePublishedAt("", fallback))
}
