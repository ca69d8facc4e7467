package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vpolunina/news-bias-dashboard/internal/cache"
	"github.com/vpolunina/news-bias-dashboard/internal/metrics"
	"github.com/vpolunina/news-bias-dashboard/internal/models"
	"github.com/vpolunina/news-bias-dashboard/internal/storage"

	"github.com/vpolunina/news-bias-dashboard/pkg/log"
)

// Веса ранжирования: совпадение по производной категории ценится выше
// совпадения по производному источнику.
const (
	scoreLikedCategory = 2
	scoreLikedSource   = 1
)

// interestProfile — агрегированный профиль интересов идентичности:
// объединённые ключевые слова плюс производные «любимые» категории и
// источники, выведенные из журнала взаимодействий.
type interestProfile struct {
	// Keywords — явные интересы, дополненные производными, с явными впереди.
	Keywords []string
	// LikedCategories/LikedSources — производные интересы для ранжирования.
	LikedCategories []string
	LikedSources    []string
}

// PersonalizedFeed возвращает страницу персональной ленты.
//
// Конвейер: агрегация профиля -> кандидатный набор -> исключение
// прочитанного -> ранжирование -> срез страницы. Total — размер
// кандидатного набора после фильтрации, до среза. Повторные вызовы на
// неизменном снимке состояния возвращают идентичный результат.
//
// Ошибки:
// - ErrInvalidArgument — пустая идентичность или отрицательная пагинация.
func (s *Service) PersonalizedFeed(ctx context.Context, id models.Identity, q models.FeedQuery) (*models.FeedPage, error) {
	const op = "service.feed.PersonalizedFeed"

	if id.IsZero() {
		return nil, fmt.Errorf("%s: identity is required: %w", op, ErrInvalidArgument)
	}
	if q.Limit < 0 || q.Offset < 0 {
		return nil, fmt.Errorf("%s: limit/offset must be non-negative: %w", op, ErrInvalidArgument)
	}

	q.Limit = s.normalizeLimit(q.Limit)

	key := cache.FeedKey(id, q)

	page, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		// Недоступный кэш равносилен промаху.
		log.From(ctx).Warn("feed_cache_get_failed",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
	}
	if ok {
		metrics.FeedCacheHits.Inc()
		return page, nil
	}
	metrics.FeedCacheMisses.Inc()

	pref, err := s.storage.PreferencesByIdentity(ctx, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		empty := models.EmptyPreference(id)
		pref = &empty
	}

	profile, err := s.aggregateInterests(ctx, id, pref)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Query-time фильтры сужают сохранённые предпочтения, но никогда
	// не расширяют их: пустое пересечение двух непустых списков даёт
	// пустую ленту, а не откат к одному из списков.
	categories, ok := narrow(pref.Categories, q.Categories)
	if !ok {
		return s.finishFeed(ctx, key, emptyFeedPage(q)), nil
	}
	countries, ok := narrow(pref.Countries, q.Countries)
	if !ok {
		return s.finishFeed(ctx, key, emptyFeedPage(q)), nil
	}
	sources, ok := narrow(pref.Sources, q.Sources)
	if !ok {
		return s.finishFeed(ctx, key, emptyFeedPage(q)), nil
	}

	candidates, err := s.storage.ListCandidates(ctx, models.CandidateQuery{
		Keywords:        profile.Keywords,
		Categories:      categories,
		Countries:       countries,
		Sources:         sources,
		ExcludedSources: pref.ExcludedSources,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cfg.Personalization.HideRead {
		candidates = dropRead(candidates, pref.ReadingHistory)
	}

	rankArticles(candidates, profile)

	total := int64(len(candidates))

	items := slicePage(candidates, q.Offset, q.Limit)

	result := &models.FeedPage{
		Items:  items,
		Limit:  q.Limit,
		Offset: q.Offset,
		Total:  total,
	}

	return s.finishFeed(ctx, key, result), nil
}

// finishFeed кладёт готовую страницу в кэш и возвращает её.
// Сбой записи в кэш не влияет на ответ.
func (s *Service) finishFeed(ctx context.Context, key string, page *models.FeedPage) *models.FeedPage {
	const op = "service.feed.finishFeed"

	if err := s.cache.Set(ctx, key, page, s.cfg.Cache.FeedTTL); err != nil {
		log.From(ctx).Warn("feed_cache_set_failed",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
	}

	return page
}

// aggregateInterests строит профиль интересов идентичности.
//
// Алгоритм:
//  1. явные interests, порядок сохранён;
//  2. взаимодействия видов {click, save, like} за скользящее окно;
//  3. частоты категорий и источников по затронутым статьям;
//  4. категории/источники с частотой >= MinFrequency, по убыванию
//     частоты (при равенстве — по алфавиту для детерминизма), с
//     отсечкой TopCategories/TopSources, добавляются к ключевым словам;
//  5. объединённый список ограничен MaxKeywords, явные интересы при
//     усечении имеют приоритет над производными.
func (s *Service) aggregateInterests(ctx context.Context, id models.Identity, pref *models.Preference) (*interestProfile, error) {
	const op = "service.feed.aggregateInterests"

	p := s.cfg.Personalization

	since := time.Now().UTC().Add(-p.Window)
	kinds := []models.InteractionKind{models.InteractionClick, models.InteractionSave, models.InteractionLike}

	inters, err := s.storage.InteractionsSince(ctx, id, kinds, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	profile := &interestProfile{}

	if len(inters) > 0 {
		ids := make([]uuid.UUID, 0, len(inters))
		for _, in := range inters {
			ids = append(ids, in.ArticleID)
		}

		articles, err := s.storage.ArticlesByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		catFreq := make(map[string]int)
		srcFreq := make(map[string]int)
		for _, in := range inters {
			a, ok := articles[in.ArticleID]
			if !ok {
				continue
			}
			if a.Category != "" {
				catFreq[a.Category]++
			}
			if a.Source != "" {
				srcFreq[a.Source]++
			}
		}

		profile.LikedCategories = topByFrequency(catFreq, p.MinFrequency, p.TopCategories)
		profile.LikedSources = topByFrequency(srcFreq, p.MinFrequency, p.TopSources)
	}

	profile.Keywords = mergeKeywords(pref.Interests, profile.LikedCategories, profile.LikedSources, p.MaxKeywords)

	return profile, nil
}

// topByFrequency возвращает ключи с частотой >= minFreq, по убыванию
// частоты; равные частоты упорядочиваются по алфавиту.
func topByFrequency(freq map[string]int, minFreq, limit int) []string {
	if limit <= 0 {
		return nil
	}

	keys := make([]string, 0, len(freq))
	for k, n := range freq {
		if n >= minFreq {
			keys = append(keys, k)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if freq[keys[i]] != freq[keys[j]] {
			return freq[keys[i]] > freq[keys[j]]
		}
		return keys[i] < keys[j]
	})

	if len(keys) > limit {
		keys = keys[:limit]
	}

	return keys
}

// mergeKeywords объединяет явные интересы с производными категориями и
// источниками: регистронезависимая дедупликация, явные значения впереди,
// итог ограничен max значениями. Производные усекаются первыми.
func mergeKeywords(explicit, likedCategories, likedSources []string, max int) []string {
	out := make([]string, 0, len(explicit)+len(likedCategories)+len(likedSources))
	seen := make(map[string]struct{})

	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}

	for _, v := range explicit {
		add(v)
	}
	for _, v := range likedCategories {
		add(v)
	}
	for _, v := range likedSources {
		add(v)
	}

	if max > 0 && len(out) > max {
		out = out[:max]
	}

	return out
}

// narrow возвращает эффективный фильтр из сохранённого списка и
// query-time override.
//
// Правила:
//   - override пустой -> сохранённый список как есть;
//   - сохранённый пустой -> override (сужение «всего корпуса»);
//   - оба непустые -> регистронезависимое пересечение в порядке
//     сохранённого списка; пустое пересечение — ok=false, вызывающий
//     обязан вернуть пустую ленту, а не расширять фильтр.
func narrow(stored, override []string) ([]string, bool) {
	if len(override) == 0 {
		return stored, true
	}
	if len(stored) == 0 {
		return override, true
	}

	want := make(map[string]struct{}, len(override))
	for _, v := range override {
		want[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}

	out := make([]string, 0, len(stored))
	for _, v := range stored {
		if _, ok := want[strings.ToLower(strings.TrimSpace(v))]; ok {
			out = append(out, v)
		}
	}

	if len(out) == 0 {
		return nil, false
	}

	return out, true
}

// dropRead исключает из кандидатов статьи из истории чтения.
func dropRead(items []models.Article, history []uuid.UUID) []models.Article {
	if len(history) == 0 {
		return items
	}

	read := make(map[uuid.UUID]struct{}, len(history))
	for _, id := range history {
		read[id] = struct{}{}
	}

	out := items[:0]
	for _, a := range items {
		if _, ok := read[a.ID]; ok {
			continue
		}
		out = append(out, a)
	}

	return out
}

// rankArticles сортирует кандидатов по (score DESC, published_at DESC,
// id DESC). Кандидаты уже отсортированы по свежести, поэтому стабильная
// сортировка по очкам сохраняет порядок внутри равных очков: очки
// доминируют над свежестью, а не наоборот.
func rankArticles(items []models.Article, profile *interestProfile) {
	likedCat := foldSet(profile.LikedCategories)
	likedSrc := foldSet(profile.LikedSources)

	score := func(a models.Article) int {
		s := 0
		if _, ok := likedCat[strings.ToLower(a.Category)]; ok {
			s += scoreLikedCategory
		}
		if _, ok := likedSrc[strings.ToLower(a.Source)]; ok {
			s += scoreLikedSource
		}
		return s
	}

	sort.SliceStable(items, func(i, j int) bool {
		return score(items[i]) > score(items[j])
	})
}

func foldSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, v := range in {
		out[strings.ToLower(v)] = struct{}{}
	}
	return out
}

// slicePage возвращает срез [offset : offset+limit]; выход за границы
// даёт пустой срез, а не ошибку.
func slicePage(items []models.Article, offset, limit int32) []models.Article {
	if offset < 0 || int(offset) >= len(items) {
		return []models.Article{}
	}

	end := len(items)
	if limit > 0 && int(offset)+int(limit) < end {
		end = int(offset) + int(limit)
	}

	return items[offset:end]
}

func emptyFeedPage(q models.FeedQuery) *models.FeedPage {
	return &models.FeedPage{
		Items:  []models.Article{},
		Limit:  q.Limit,
		Offset: q.Offset,
		Total:  0,
	}
}
