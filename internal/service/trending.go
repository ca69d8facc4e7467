package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
)

// TrendingTopics возвращает категории с наибольшим объёмом активности
// за окно персонализации.
//
// Основной сигнал — взаимодействия всех идентичностей по категориям
// статей; на холодном старте (журнал пуст) используется фолбэк — объём
// публикаций по категориям. Порядок детерминирован: количество по
// убыванию, при равенстве — категория по алфавиту.
func (s *Service) TrendingTopics(ctx context.Context, limit int32) ([]models.TrendingTopic, error) {
	const op = "service.trending.TrendingTopics"

	if limit < 0 {
		return nil, fmt.Errorf("%s: limit must be non-negative: %w", op, ErrInvalidArgument)
	}
	limit = s.normalizeLimit(limit)

	since := time.Now().UTC().Add(-s.cfg.Personalization.Window)

	counts, err := s.storage.InteractionCountsByCategory(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(counts) == 0 {
		counts, err = s.storage.CategoryCounts(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	topics := make([]models.TrendingTopic, 0, len(counts))
	for topic, count := range counts {
		if topic == "" {
			continue
		}
		topics = append(topics, models.TrendingTopic{Topic: topic, Count: count})
	}

	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Count != topics[j].Count {
			return topics[i].Count > topics[j].Count
		}
		return topics[i].Topic < topics[j].Topic
	})

	if int32(len(topics)) > limit {
		topics = topics[:limit]
	}

	return topics, nil
}
