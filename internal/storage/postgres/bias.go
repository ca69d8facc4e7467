package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
	"github.com/vpolunina/news-bias-dashboard/internal/storage"
)

// SeedBiasSources идемпотентно заполняет таблицу источников (upsert по имени).
// Ключ хранится в нижнем регистре, исходное написание — в display_name.
func (s *Storage) SeedBiasSources(ctx context.Context, items []models.BiasSource) error {
	const op = "storage.postgres.SeedBiasSources"

	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, b := range items {
		batch.Queue(`
		INSERT INTO bias_sources (name, display_name, rating, reliability, description)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE
		SET display_name = EXCLUDED.display_name,
			rating = EXCLUDED.rating,
			reliability = EXCLUDED.reliability,
			description = EXCLUDED.description
		`, strings.ToLower(b.Name), b.Name, b.Rating, b.Reliability, b.Description)
	}

	br := s.db.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("%s: batch item %d: %w", op, i, err)
		}
	}

	return nil
}

// BiasSourceByName — регистронезависимый поиск источника.
// Если запись не найдена — storage.ErrNotFound.
func (s *Storage) BiasSourceByName(ctx context.Context, name string) (*models.BiasSource, error) {
	const op = "storage.postgres.BiasSourceByName"

	var b models.BiasSource
	err := s.db.QueryRow(ctx, `
	SELECT display_name, rating, reliability, description
	FROM bias_sources
	WHERE name = $1
	`, strings.ToLower(strings.TrimSpace(name))).Scan(&b.Name, &b.Rating, &b.Reliability, &b.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &b, nil
}

// ListBiasSources возвращает все записи, отсортированные по имени.
func (s *Storage) ListBiasSources(ctx context.Context) ([]models.BiasSource, error) {
	const op = "storage.postgres.ListBiasSources"

	rows, err := s.db.Query(ctx, `
	SELECT display_name, rating, reliability, description
	FROM bias_sources
	ORDER BY display_name
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []models.BiasSource
	for rows.Next() {
		var b models.BiasSource
		if err := rows.Scan(&b.Name, &b.Rating, &b.Reliability, &b.Description); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		out = append(out, b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return out, nil
}
