package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
	"github.com/vpolunina/news-bias-dashboard/internal/storage"

	"github.com/vpolunina/news-bias-dashboard/pkg/log"
)

// ResolveSource возвращает (bias, reliability) источника по имени.
//
// Правила:
//   - сопоставление имени регистронезависимое (см. DESIGN.md);
//   - неизвестный источник -> (nil, nil) без ошибки: «неизвестно»
//     отличается от настоящей центральной оценки (0, 0.5);
//   - метка 7-балльной шкалы переводится в каноническую оценку [-1..1]
//     фиксированной таблицей; NLP-вывод предвзятости не выполняется.
func (s *Service) ResolveSource(ctx context.Context, name string) (*float64, *float64, error) {
	const op = "service.bias.ResolveSource"

	src, err := s.storage.BiasSourceByName(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, nil
		}

		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	reliability := src.Reliability

	score, ok := src.Score()
	if !ok {
		log.From(ctx).Warn("bias_rating_unmapped",
			slog.String("op", op),
			slog.String("source", src.Name),
			slog.String("rating", src.Rating),
		)

		return nil, &reliability, nil
	}

	return &score, &reliability, nil
}

// BiasSourceByName возвращает запись таблицы источников.
//
// Ошибки:
// - ErrNotFound — если запись отсутствует (маппинг storage.ErrNotFound).
func (s *Service) BiasSourceByName(ctx context.Context, name string) (*models.BiasSource, error) {
	const op = "service.bias.BiasSourceByName"

	if name == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	src, err := s.storage.BiasSourceByName(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return src, nil
}

// ListBiasSources возвращает всю таблицу источников.
func (s *Service) ListBiasSources(ctx context.Context) ([]models.BiasSource, error) {
	const op = "service.bias.ListBiasSources"

	out, err := s.storage.ListBiasSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// SeedBias заполняет таблицу источников посевом по умолчанию.
// Идемпотентно; вызывается на старте сервиса.
func (s *Service) SeedBias(ctx context.Context) error {
	const op = "service.bias.SeedBias"

	if err := s.storage.SeedBiasSources(ctx, models.DefaultBiasSources()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
