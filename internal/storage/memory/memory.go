// memory — потокобезопасная реализация storage.Storage в памяти.
//
// Используется в dev-конфигурации (provider=sample, без БД) и в тестах:
// хранилище явно создаётся, внедряется и сбрасывается через Reset,
// никакого неявного процессно-глобального состояния.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
	"github.com/vpolunina/news-bias-dashboard/internal/storage"
)

// Storage — in-memory хранилище.
// Один mutex на все коллекции: гонка чтение-изменение-запись истории
// чтения от одной идентичности сериализуется на нём же.
type Storage struct {
	mu sync.RWMutex

	articles map[uuid.UUID]models.Article
	byURL    map[string]uuid.UUID

	// bias — ключ в нижнем регистре (сопоставление регистронезависимое).
	bias map[string]models.BiasSource

	// prefs — ключ models.Identity.Key().
	prefs map[string]models.Preference

	interactions []models.Interaction
}

// New создаёт пустое хранилище.
func New() *Storage {
	s := &Storage{}
	s.reset()
	return s
}

// Reset очищает все коллекции. Нужен тестам и пересеву dev-данных.
func (s *Storage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Storage) reset() {
	s.articles = make(map[uuid.UUID]models.Article)
	s.byURL = make(map[string]uuid.UUID)
	s.bias = make(map[string]models.BiasSource)
	s.prefs = make(map[string]models.Preference)
	s.interactions = nil
}

// Close — no-op для in-memory реализации.
func (s *Storage) Close() {}

// SaveArticles сохраняет пачку статей с upsert по каноническому URL.
// ID существующей записи сохраняется; оценки не затираются nil-значениями.
func (s *Storage) SaveArticles(_ context.Context, items []models.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range items {
		item.PublishedAt = item.PublishedAt.UTC()
		item.FetchedAt = item.FetchedAt.UTC()

		if existingID, ok := s.byURL[item.URL]; ok && item.URL != "" {
			existing := s.articles[existingID]
			item.ID = existingID
			if item.BiasScore == nil {
				item.BiasScore = existing.BiasScore
			}
			if item.Reliability == nil {
				item.Reliability = existing.Reliability
			}
			s.articles[existingID] = item
			continue
		}

		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		s.articles[item.ID] = item
		if item.URL != "" {
			s.byURL[item.URL] = item.ID
		}
	}

	return nil
}

// ListArticles возвращает страницу статей по общим фильтрам.
func (s *Storage) ListArticles(_ context.Context, filter models.ArticleFilter, page models.PageRequest) (*models.ArticlePage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Article
	for _, a := range s.articles {
		if !matchesFilter(a, filter) {
			continue
		}
		matched = append(matched, a)
	}
	sortByRecency(matched)

	total := int64(len(matched))
	items := slicePage(matched, page.Offset, page.Limit)

	return &models.ArticlePage{
		Items:  items,
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  total,
	}, nil
}

// ArticleByID возвращает статью по идентификатору.
func (s *Storage) ArticleByID(_ context.Context, id uuid.UUID) (*models.Article, error) {
	const op = "storage.memory.ArticleByID"

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return &a, nil
}

// ArticlesByIDs возвращает найденные статьи; отсутствующие пропускаются.
func (s *Storage) ArticlesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[uuid.UUID]models.Article, len(ids))
	for _, id := range ids {
		if a, ok := s.articles[id]; ok {
			out[id] = a
		}
	}

	return out, nil
}

// ListCandidates возвращает кандидатный набор персональной ленты.
func (s *Storage) ListCandidates(_ context.Context, q models.CandidateQuery) ([]models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Article
	for _, a := range s.articles {
		if !matchesCandidate(a, q) {
			continue
		}
		matched = append(matched, a)
	}
	sortByRecency(matched)

	return matched, nil
}

// CategoryCounts — количество статей по категориям.
func (s *Storage) CategoryCounts(_ context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int64)
	for _, a := range s.articles {
		if a.Category == "" {
			continue
		}
		out[a.Category]++
	}

	return out, nil
}

// SeedBiasSources идемпотентно заполняет таблицу источников.
func (s *Storage) SeedBiasSources(_ context.Context, items []models.BiasSource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range items {
		s.bias[strings.ToLower(b.Name)] = b
	}

	return nil
}

// BiasSourceByName — регистронезависимый поиск источника.
func (s *Storage) BiasSourceByName(_ context.Context, name string) (*models.BiasSource, error) {
	const op = "storage.memory.BiasSourceByName"

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bias[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return &b, nil
}

// ListBiasSources возвращает все записи, отсортированные по имени.
func (s *Storage) ListBiasSources(_ context.Context) ([]models.BiasSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.BiasSource, 0, len(s.bias))
	for _, b := range s.bias {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

// PreferencesByIdentity возвращает запись идентичности.
func (s *Storage) PreferencesByIdentity(_ context.Context, id models.Identity) (*models.Preference, error) {
	const op = "storage.memory.PreferencesByIdentity"

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.prefs[id.Key()]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	out := clonePreference(p)
	return &out, nil
}

// SavePreferences создаёт или обновляет явные списки предпочтений.
// История чтения существующей записи сохраняется как есть.
func (s *Storage) SavePreferences(_ context.Context, pref models.Preference) (*models.Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	stored, ok := s.prefs[pref.Identity.Key()]
	if !ok {
		stored = models.EmptyPreference(pref.Identity)
		stored.CreatedAt = now
	}

	stored.Interests = cloneStrings(pref.Interests)
	stored.Categories = cloneStrings(pref.Categories)
	stored.Sources = cloneStrings(pref.Sources)
	stored.Countries = cloneStrings(pref.Countries)
	stored.ExcludedSources = cloneStrings(pref.ExcludedSources)
	stored.UpdatedAt = now

	s.prefs[pref.Identity.Key()] = stored

	out := clonePreference(stored)
	return &out, nil
}

// RecordInteraction атомарно добавляет запись журнала и обновляет историю
// чтения: обе операции выполняются под одним локом, частичного состояния
// не возникает.
func (s *Storage) RecordInteraction(_ context.Context, inter models.Interaction, updateHistory bool) (*models.Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inter.ID == uuid.Nil {
		inter.ID = uuid.New()
	}
	if inter.CreatedAt.IsZero() {
		inter.CreatedAt = time.Now().UTC()
	}

	s.interactions = append(s.interactions, inter)

	if updateHistory {
		key := inter.Identity.Key()
		pref, ok := s.prefs[key]
		if !ok {
			pref = models.EmptyPreference(inter.Identity)
			pref.CreatedAt = inter.CreatedAt
		}
		pref.ReadingHistory = models.PushHistory(pref.ReadingHistory, inter.ArticleID, models.ReadingHistoryLimit)
		pref.UpdatedAt = inter.CreatedAt
		s.prefs[key] = pref
	}

	return &inter, nil
}

// InteractionsSince возвращает взаимодействия идентичности указанных видов.
func (s *Storage) InteractionsSince(_ context.Context, id models.Identity, kinds []models.InteractionKind, since time.Time) ([]models.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kindSet := make(map[models.InteractionKind]struct{}, len(kinds))
	for _, k := range kinds {
		kindSet[k] = struct{}{}
	}

	var out []models.Interaction
	for _, in := range s.interactions {
		if in.Identity != id {
			continue
		}
		if len(kindSet) > 0 {
			if _, ok := kindSet[in.Kind]; !ok {
				continue
			}
		}
		if in.CreatedAt.Before(since) {
			continue
		}
		out = append(out, in)
	}

	return out, nil
}

// InteractionCountsByCategory — объём взаимодействий по категориям статей.
func (s *Storage) InteractionCountsByCategory(_ context.Context, since time.Time) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int64)
	for _, in := range s.interactions {
		if in.CreatedAt.Before(since) {
			continue
		}
		a, ok := s.articles[in.ArticleID]
		if !ok || a.Category == "" {
			continue
		}
		out[a.Category]++
	}

	return out, nil
}

// matchesFilter — проверка статьи против общих фильтров списка.
func matchesFilter(a models.Article, f models.ArticleFilter) bool {
	if !containsFold(f.Categories, a.Category) {
		return false
	}
	if !containsFold(f.Countries, a.Country) {
		return false
	}
	if !containsFold(f.Sources, a.Source) {
		return false
	}
	if !f.Since.IsZero() && a.PublishedAt.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && a.PublishedAt.After(f.Until) {
		return false
	}

	return true
}

// matchesCandidate — проверка статьи против кандидатного запроса ленты.
func matchesCandidate(a models.Article, q models.CandidateQuery) bool {
	if !containsFold(q.Categories, a.Category) {
		return false
	}
	if !containsFold(q.Countries, a.Country) {
		return false
	}
	if !containsFold(q.Sources, a.Source) {
		return false
	}
	for _, excl := range q.ExcludedSources {
		if strings.EqualFold(excl, a.Source) {
			return false
		}
	}
	if len(q.Keywords) > 0 && !matchesKeywords(a, q.Keywords) {
		return false
	}

	return true
}

// matchesKeywords — регистронезависимое подстрочное совпадение хотя бы
// одного ключевого слова по title/description/content.
func matchesKeywords(a models.Article, keywords []string) bool {
	haystack := strings.ToLower(a.Title + "\n" + a.Description + "\n" + a.Content)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}

	return false
}

// containsFold — true, если список пуст (нет фильтра) или содержит значение.
func containsFold(list []string, v string) bool {
	if len(list) == 0 {
		return true
	}
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}

	return false
}

// sortByRecency — фиксированный порядок (published_at DESC, id DESC),
// чтобы выдача была детерминированной для зафиксированного снимка данных.
func sortByRecency(items []models.Article) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].PublishedAt.Equal(items[j].PublishedAt) {
			return items[i].PublishedAt.After(items[j].PublishedAt)
		}
		return items[i].ID.String() > items[j].ID.String()
	})
}

// slicePage — безопасный срез [offset:offset+limit]; выход за границы
// возвращает пустую страницу, а не ошибку.
func slicePage(items []models.Article, offset, limit int32) []models.Article {
	if offset < 0 {
		offset = 0
	}
	if int(offset) >= len(items) {
		return []models.Article{}
	}
	end := len(items)
	if limit > 0 && int(offset)+int(limit) < end {
		end = int(offset) + int(limit)
	}

	return items[offset:end]
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func clonePreference(p models.Preference) models.Preference {
	p.Interests = cloneStrings(p.Interests)
	p.Categories = cloneStrings(p.Categories)
	p.Sources = cloneStrings(p.Sources)
	p.Countries = cloneStrings(p.Countries)
	p.ExcludedSources = cloneStrings(p.ExcludedSources)
	history := make([]uuid.UUID, len(p.ReadingHistory))
	copy(history, p.ReadingHistory)
	p.ReadingHistory = history
	return p
}

// Проверка на соответствие интерфейсу Storage.
var _ storage.Storage = (*Storage)(nil)
