package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
	"github.com/vpolunina/news-bias-dashboard/internal/storage"

	"github.com/vpolunina/news-bias-dashboard/pkg/log"
)

// GetPreferences возвращает настройки идентичности.
// Запись создаётся лениво: первое чтение для незнакомой идентичности
// сохраняет и возвращает пустую запись, а не ошибку.
func (s *Service) GetPreferences(ctx context.Context, id models.Identity) (*models.Preference, error) {
	const op = "service.preferences.GetPreferences"

	if id.IsZero() {
		return nil, fmt.Errorf("%s: identity is required: %w", op, ErrInvalidArgument)
	}

	pref, err := s.storage.PreferencesByIdentity(ctx, id)
	if err == nil {
		return pref, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.storage.SavePreferences(ctx, models.EmptyPreference(id))
	if err != nil {
		return nil, fmt.Errorf("%s: lazy create: %w", op, err)
	}

	return created, nil
}

// UpdatePreferences сохраняет явные списки предпочтений идентичности.
//
// Списки нормализуются (обрезка пробелов, отбрасывание пустых,
// регистронезависимая дедупликация с сохранением порядка). История чтения
// этим вызовом не меняется. Кэшированные страницы ленты идентичности
// сбрасываются: новые предпочтения меняют фильтрацию и ранжирование.
func (s *Service) UpdatePreferences(ctx context.Context, pref models.Preference) (*models.Preference, error) {
	const op = "service.preferences.UpdatePreferences"

	if pref.Identity.IsZero() {
		return nil, fmt.Errorf("%s: identity is required: %w", op, ErrInvalidArgument)
	}

	pref.Interests = normalizeList(pref.Interests)
	pref.Categories = normalizeList(pref.Categories)
	pref.Sources = normalizeList(pref.Sources)
	pref.Countries = normalizeList(pref.Countries)
	pref.ExcludedSources = normalizeList(pref.ExcludedSources)

	saved, err := s.storage.SavePreferences(ctx, pref)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.InvalidateIdentity(ctx, pref.Identity); err != nil {
		log.From(ctx).Warn("feed_cache_invalidate_failed",
			slog.String("op", op),
			slog.String("identity", pref.Identity.Key()),
			slog.String("error", err.Error()),
		)
	}

	return saved, nil
}

// normalizeList — обрезка пробелов, отбрасывание пустых значений и
// регистронезависимая дедупликация с сохранением исходного порядка
// и написания первого вхождения.
func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))

	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}

		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}

	return out
}
