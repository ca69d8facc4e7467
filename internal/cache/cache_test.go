package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
)

// Тесты ключей кэша и no-op реализации.

// TestFeedKey_Deterministic — порядок параметров и регистр не меняют ключ.
func TestFeedKey_Deterministic(t *testing.T) {
	t.Parallel()

	id := models.UserIdentity("42")

	a := FeedKey(id, models.FeedQuery{Limit: 25, Offset: 0, Categories: []string{"politics", "business"}})
	b := FeedKey(id, models.FeedQuery{Limit: 25, Offset: 0, Categories: []string{"Business", " politics"}})
	require.Equal(t, a, b)

	c := FeedKey(id, models.FeedQuery{Limit: 25, Offset: 25, Categories: []string{"politics", "business"}})
	require.NotEqual(t, a, c, "pagination is part of the key")
}

// TestFeedKey_IdentityPrefix — все ключи идентичности начинаются с её
// префикса: этим пользуется префиксная инвалидация.
func TestFeedKey_IdentityPrefix(t *testing.T) {
	t.Parallel()

	id := models.SessionIdentity("abc")
	prefix := IdentityPrefix(id)

	require.Equal(t, "session:abc:", prefix)

	key := FeedKey(id, models.FeedQuery{Limit: 10, Offset: 20, Sources: []string{"BBC"}})
	require.True(t, len(key) > len(prefix) && key[:len(prefix)] == prefix)

	other := FeedKey(models.UserIdentity("abc"), models.FeedQuery{Limit: 10, Offset: 20})
	require.NotEqual(t, prefix, other[:len(prefix)], "user and session namespaces never collide")
}

// TestNoopCache — заглушка всегда промахивается и не ошибается.
func TestNoopCache(t *testing.T) {
	t.Parallel()

	c := NewNoop()
	ctx := context.Background()

	page, ok, err := c.Get(ctx, "anything")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, page)

	require.NoError(t, c.Set(ctx, "anything", &models.FeedPage{}, time.Minute))
	require.NoError(t, c.InvalidateIdentity(ctx, models.UserIdentity("u")))
	require.NoError(t, c.Close())
}
