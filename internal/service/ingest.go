package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vpolunina/news-bias-dashboard/internal/ingest"
	"github.com/vpolunina/news-bias-dashboard/internal/metrics"

	"github.com/vpolunina/news-bias-dashboard/pkg/log"
)

// RefreshArticles выполняет один проход инжеста: запрашивает пачку
// статей у провайдера, проставляет оценки предвзятости/надёжности по
// таблице источников и сохраняет результат (upsert по URL).
//
// Возвращает количество сохранённых статей. Оценки неизвестных
// источников остаются nil («неизвестно»), а не центральными значениями.
//
// Ошибки:
// - ErrUpstreamUnavailable — провайдер недоступен или ответил ошибкой.
func (s *Service) RefreshArticles(ctx context.Context) (int, error) {
	const op = "service.ingest.RefreshArticles"

	if s.source == nil {
		return 0, fmt.Errorf("%s: ingest source is not configured", op)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.Ingest.Timeout)
	defer cancel()

	res, err := s.source.Fetch(fetchCtx, ingest.FetchQuery{Limit: s.cfg.Ingest.BatchLimit})
	if err != nil {
		if errors.Is(err, ingest.ErrUnavailable) {
			return 0, fmt.Errorf("%s: %w: %w", op, ErrUpstreamUnavailable, err)
		}

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	// Оценки разрешаются один раз на источник, а не на статью.
	type rating struct {
		bias        *float64
		reliability *float64
	}
	resolved := make(map[string]rating)

	items := res.Items
	for i := range items {
		name := items[i].Source
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		r, ok := resolved[key]
		if !ok {
			bias, rel, err := s.ResolveSource(ctx, name)
			if err != nil {
				return 0, fmt.Errorf("%s: %w", op, err)
			}
			r = rating{bias: bias, reliability: rel}
			resolved[key] = r
		}

		items[i].BiasScore = r.bias
		items[i].Reliability = r.reliability
	}

	if err := s.storage.SaveArticles(ctx, items); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	metrics.ArticlesIngested.Add(float64(len(items)))

	return len(items), nil
}

// StartIngest запускает фоновый цикл инжеста: немедленный проход при
// старте, затем по тикеру с периодом Ingest.Interval. Нулевой период
// отключает цикл. Блокируется до отмены ctx.
//
// Сбой провайдера не останавливает цикл: пауза до следующего тика.
func (s *Service) StartIngest(ctx context.Context) {
	const op = "service.ingest.StartIngest"

	interval := s.cfg.Ingest.Interval
	if interval <= 0 {
		log.From(ctx).Info("ingest_disabled", slog.String("op", op))
		return
	}

	runOnce := func() {
		started := time.Now()

		n, err := s.RefreshArticles(ctx)
		if err != nil {
			log.From(ctx).Error("ingest_failed",
				slog.String("op", op),
				slog.String("error", err.Error()),
			)
			return
		}

		log.From(ctx).Info("ingest_completed",
			slog.String("op", op),
			slog.Int("articles", n),
			slog.Duration("took", time.Since(started)),
		)
	}

	runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.From(ctx).Info("ingest_stopped", slog.String("op", op))
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
