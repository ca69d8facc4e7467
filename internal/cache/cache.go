// cache — кэш готовых страниц персональной ленты.
//
// Кэш — оптимизация, а не механизм корректности: промах обязан
// воспроизводить идентичную фильтрацию/ранжирование. Любая записанная
// страница — чистый снимок ответа, никогда не авторитетное состояние.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
)

// FeedCache — минимальный контракт кэша ленты.
type FeedCache interface {
	// Get возвращает страницу и признак её наличия в кэше.
	Get(ctx context.Context, key string) (*models.FeedPage, bool, error)
	// Set сохраняет страницу с TTL.
	Set(ctx context.Context, key string, page *models.FeedPage, ttl time.Duration) error
	// InvalidateIdentity забывает все страницы идентичности: одно
	// взаимодействие может поменять ранжирование на любой странице.
	InvalidateIdentity(ctx context.Context, id models.Identity) error
	// Close закрывает клиент.
	Close() error
}

// FeedKey — детерминированный ключ страницы: идентичность + пагинация +
// query-time фильтры. Списки сортируются, чтобы порядок параметров
// в запросе не плодил дубликаты ключей.
func FeedKey(id models.Identity, q models.FeedQuery) string {
	return fmt.Sprintf("%sl=%d;o=%d;cat=%s;cty=%s;src=%s",
		IdentityPrefix(id),
		q.Limit, q.Offset,
		joinSorted(q.Categories),
		joinSorted(q.Countries),
		joinSorted(q.Sources),
	)
}

// IdentityPrefix — общий префикс всех ключей идентичности.
func IdentityPrefix(id models.Identity) string {
	return id.Key() + ":"
}

func joinSorted(in []string) string {
	if len(in) == 0 {
		return ""
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	sort.Strings(out)
	return strings.Join(out, ",")
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "feed:".
func NewRedisCache(redisURL, prefix string) (FeedCache, error) {
	if prefix == "" {
		prefix = "feed:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

func (c *redisCache) key(k string) string { return c.prefix + k }

func (c *redisCache) Get(ctx context.Context, key string) (*models.FeedPage, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, err
	}

	var page models.FeedPage
	if err := json.Unmarshal(raw, &page); err != nil {
		// Битый снимок равносилен промаху.
		return nil, false, nil
	}

	return &page, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, page *models.FeedPage, ttl time.Duration) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, c.key(key), raw, ttl).Err()
}

// InvalidateIdentity удаляет все ключи с префиксом идентичности через SCAN,
// не блокируя Redis командой KEYS.
func (c *redisCache) InvalidateIdentity(ctx context.Context, id models.Identity) error {
	pattern := c.key(IdentityPrefix(id)) + "*"

	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (c *redisCache) Close() error { return c.rdb.Close() }

// noopCache — реализация для выключенного кэша: всегда промах.
type noopCache struct{}

// NewNoop возвращает кэш-заглушку.
func NewNoop() FeedCache { return noopCache{} }

func (noopCache) Get(context.Context, string) (*models.FeedPage, bool, error) {
	return nil, false, nil
}

func (noopCache) Set(context.Context, string, *models.FeedPage, time.Duration) error { return nil }

func (noopCache) InvalidateIdentity(context.Context, models.Identity) error { return nil }

func (noopCache) Close() error { return nil }
