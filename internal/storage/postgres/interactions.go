package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
	"github.com/vpolunina/news-bias-dashboard/internal/storage"
)

// RecordInteraction атомарно добавляет запись журнала и (для view)
// обновляет историю чтения идентичности.
//
// Атомарность: обе операции выполняются в одной транзакции; блокировка
// строки preferences сериализует гонку двух запросов одной идентичности.
// Перенос статьи в начало истории и обрезка до лимита выполняются одним
// UPDATE-выражением на стороне БД.
func (s *Storage) RecordInteraction(ctx context.Context, inter models.Interaction, updateHistory bool) (*models.Interaction, error) {
	const op = "storage.postgres.RecordInteraction"

	if inter.ID == uuid.Nil {
		inter.ID = uuid.New()
	}
	if inter.CreatedAt.IsZero() {
		inter.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: begin: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	id := inter.Identity
	_, err = tx.Exec(ctx, `
	INSERT INTO interactions (id, identity_kind, identity_id, article_id, kind, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`, inter.ID, string(id.Kind()), id.ID(), inter.ArticleID, string(inter.Kind), inter.CreatedAt)
	if err != nil {
		// Ссылка на несуществующую статью — NotFound, а не внутренняя ошибка.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	if updateHistory {
		_, err = tx.Exec(ctx, `
		INSERT INTO preferences (identity_key, identity_kind, identity_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (identity_key) DO NOTHING
		`, id.Key(), string(id.Kind()), id.ID())
		if err != nil {
			return nil, fmt.Errorf("%s: ensure preference: %w", op, err)
		}

		_, err = tx.Exec(ctx, `
		UPDATE preferences
		SET reading_history = (ARRAY[$2::uuid] || array_remove(reading_history, $2::uuid))[1:$3],
			updated_at = now()
		WHERE identity_key = $1
		`, id.Key(), inter.ArticleID, models.ReadingHistoryLimit)
		if err != nil {
			return nil, fmt.Errorf("%s: update history: %w", op, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", op, err)
	}

	return &inter, nil
}

// InteractionsSince возвращает взаимодействия идентичности указанных видов.
func (s *Storage) InteractionsSince(ctx context.Context, id models.Identity, kinds []models.InteractionKind, since time.Time) ([]models.Interaction, error) {
	const op = "storage.postgres.InteractionsSince"

	kindArgs := make([]string, 0, len(kinds))
	for _, k := range kinds {
		kindArgs = append(kindArgs, string(k))
	}

	rows, err := s.db.Query(ctx, `
	SELECT id, article_id, kind, created_at
	FROM interactions
	WHERE identity_kind = $1 AND identity_id = $2
		AND ($3::text[] = '{}' OR kind = ANY($3))
		AND created_at >= $4
	ORDER BY created_at DESC
	`, string(id.Kind()), id.ID(), kindArgs, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []models.Interaction
	for rows.Next() {
		in := models.Interaction{Identity: id}
		var kind string
		if err := rows.Scan(&in.ID, &in.ArticleID, &kind, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		in.Kind = models.InteractionKind(kind)
		in.CreatedAt = in.CreatedAt.UTC()
		out = append(out, in)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return out, nil
}

// InteractionCountsByCategory — объём взаимодействий по категориям статей.
func (s *Storage) InteractionCountsByCategory(ctx context.Context, since time.Time) (map[string]int64, error) {
	const op = "storage.postgres.InteractionCountsByCategory"

	rows, err := s.db.Query(ctx, `
	SELECT a.category, count(*)
	FROM interactions i
	JOIN articles a ON a.id = i.article_id
	WHERE i.created_at >= $1 AND a.category <> ''
	GROUP BY a.category
	`, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var category string
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		out[category] = count
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return out, nil
}
