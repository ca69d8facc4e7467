package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
	"github.com/vpolunina/news-bias-dashboard/internal/storage"
)

// PreferencesByIdentity возвращает запись идентичности.
// Если запись не найдена — storage.ErrNotFound.
func (s *Storage) PreferencesByIdentity(ctx context.Context, id models.Identity) (*models.Preference, error) {
	const op = "storage.postgres.PreferencesByIdentity"

	var p models.Preference
	p.Identity = id

	err := s.db.QueryRow(ctx, `
	SELECT interests, categories, sources, countries, excluded_sources, reading_history, created_at, updated_at
	FROM preferences
	WHERE identity_key = $1
	`, id.Key()).Scan(
		&p.Interests,
		&p.Categories,
		&p.Sources,
		&p.Countries,
		&p.ExcludedSources,
		&p.ReadingHistory,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()

	return &p, nil
}

// SavePreferences создаёт или обновляет явные списки предпочтений.
// История чтения существующей записи не затрагивается.
func (s *Storage) SavePreferences(ctx context.Context, pref models.Preference) (*models.Preference, error) {
	const op = "storage.postgres.SavePreferences"

	id := pref.Identity
	_, err := s.db.Exec(ctx, `
	INSERT INTO preferences (identity_key, identity_kind, identity_id, interests, categories, sources, countries, excluded_sources)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (identity_key) DO UPDATE
	SET interests = EXCLUDED.interests,
		categories = EXCLUDED.categories,
		sources = EXCLUDED.sources,
		countries = EXCLUDED.countries,
		excluded_sources = EXCLUDED.excluded_sources,
		updated_at = now()
	`, id.Key(), string(id.Kind()), id.ID(),
		notNil(pref.Interests), notNil(pref.Categories), notNil(pref.Sources),
		notNil(pref.Countries), notNil(pref.ExcludedSources))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.PreferencesByIdentity(ctx, id)
}

// notNil — nil-срез в пустой TEXT[] вместо NULL.
func notNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
