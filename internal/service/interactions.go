package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vpolunina/news-bias-dashboard/internal/metrics"
	"github.com/vpolunina/news-bias-dashboard/internal/models"
	"github.com/vpolunina/news-bias-dashboard/internal/storage"

	"github.com/vpolunina/news-bias-dashboard/pkg/log"
)

// RecordInteraction добавляет запись журнала действий.
//
// Семантика:
//   - ссылка на несуществующую статью — ErrNotFound, статья-заглушка
//     никогда не создаётся;
//   - kind=view дополнительно переносит статью в начало истории чтения
//     идентичности; вставка в журнал и обновление истории атомарны —
//     либо происходит и то и другое, либо ничего;
//   - после записи кэш ленты идентичности сбрасывается целиком: одно
//     взаимодействие может изменить ранжирование на любой странице.
//
// Ошибки:
// - ErrInvalidArgument — пустая идентичность, неизвестный kind, нулевой article_id;
// - ErrNotFound — статья отсутствует.
func (s *Service) RecordInteraction(ctx context.Context, id models.Identity, articleID uuid.UUID, kind models.InteractionKind) (*models.Interaction, error) {
	const op = "service.interactions.RecordInteraction"

	if id.IsZero() {
		return nil, fmt.Errorf("%s: identity is required: %w", op, ErrInvalidArgument)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%s: unknown interaction kind %q: %w", op, kind, ErrInvalidArgument)
	}
	if articleID == uuid.Nil {
		return nil, fmt.Errorf("%s: article_id is required: %w", op, ErrInvalidArgument)
	}

	if _, err := s.storage.ArticleByID(ctx, articleID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: article %s: %w", op, articleID, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	inter := models.Interaction{
		ID:        uuid.New(),
		Identity:  id,
		ArticleID: articleID,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.storage.RecordInteraction(ctx, inter, kind == models.InteractionView)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: article %s: %w", op, articleID, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.InteractionsRecorded.WithLabelValues(string(kind)).Inc()

	// Сбой инвалидации не отменяет уже записанное взаимодействие:
	// протухшая страница доживёт до TTL.
	if err := s.cache.InvalidateIdentity(ctx, id); err != nil {
		log.From(ctx).Warn("feed_cache_invalidate_failed",
			slog.String("op", op),
			slog.String("identity", id.Key()),
			slog.String("error", err.Error()),
		)
	}

	return created, nil
}
