package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
	"github.com/vpolunina/news-bias-dashboard/internal/storage"
)

const articleColumns = `id, title, description, content, url, image_url, source, category, country, published_at, fetched_at, bias_score, reliability, topic_id`

// SaveArticles сохраняет пачку статей с upsert по каноническому URL.
//
// Политика обновления:
//   - title/description — обновляются всегда;
//   - content — только если пришёл непустой и длиннее текущего;
//   - image_url/category/country — если пришли новые непустые значения;
//   - published_at — не меняется;
//   - bias_score/reliability — не затираются NULL-значениями;
//   - fetched_at — обновляется всегда.
func (s *Storage) SaveArticles(ctx context.Context, items []models.Article) error {
	const op = "storage.postgres.SaveArticles"

	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, item := range items {
		id := item.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		batch.Queue(`
		INSERT INTO articles (id, title, description, content, url, image_url, source, category, country, published_at, fetched_at, bias_score, reliability, topic_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (url) DO UPDATE
		SET
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		content = CASE WHEN EXCLUDED.content <> '' AND length(EXCLUDED.content) > length(articles.content)
			THEN EXCLUDED.content ELSE articles.content END,
		image_url = CASE WHEN EXCLUDED.image_url <> '' THEN EXCLUDED.image_url ELSE articles.image_url END,
		category = CASE WHEN EXCLUDED.category <> '' THEN EXCLUDED.category ELSE articles.category END,
		country = CASE WHEN EXCLUDED.country <> '' THEN EXCLUDED.country ELSE articles.country END,
		bias_score = COALESCE(EXCLUDED.bias_score, articles.bias_score),
		reliability = COALESCE(EXCLUDED.reliability, articles.reliability),
		fetched_at = EXCLUDED.fetched_at
		`, id, item.Title, item.Description, item.Content, item.URL, item.ImageURL,
			item.Source, item.Category, strings.ToLower(item.Country),
			item.PublishedAt.UTC(), item.FetchedAt.UTC(), item.BiasScore, item.Reliability, item.TopicID)
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

// ListArticles возвращает страницу статей по общим фильтрам.
// Сортировка фиксирована: published_at DESC, id DESC.
func (s *Storage) ListArticles(ctx context.Context, filter models.ArticleFilter, page models.PageRequest) (*models.ArticlePage, error) {
	const op = "storage.postgres.ListArticles"

	preds := filterPredicates(filter)

	countQuery := qb.Select("count(*)").From("articles")
	for _, p := range preds {
		countQuery = countQuery.Where(p)
	}

	sqlStr, args, err := countQuery.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build count: %w", op, err)
	}

	var total int64
	if err := s.db.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("%s: count: %w", op, err)
	}

	listQuery := qb.Select(articleColumns).
		From("articles").
		OrderBy("published_at DESC", "id DESC")
	for _, p := range preds {
		listQuery = listQuery.Where(p)
	}
	if page.Limit > 0 {
		listQuery = listQuery.Limit(uint64(page.Limit))
	}
	if page.Offset > 0 {
		listQuery = listQuery.Offset(uint64(page.Offset))
	}

	sqlStr, args, err = listQuery.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build list: %w", op, err)
	}

	rows, err := s.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items, err := scanArticles(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.ArticlePage{
		Items:  items,
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  total,
	}, nil
}

// ArticleByID возвращает статью по идентификатору.
// Если запись не найдена — storage.ErrNotFound.
func (s *Storage) ArticleByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	const op = "storage.postgres.ArticleByID"

	row := s.db.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)

	a, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return a, nil
}

// ArticlesByIDs возвращает найденные статьи; отсутствующие пропускаются.
func (s *Storage) ArticlesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Article, error) {
	const op = "storage.postgres.ArticlesByIDs"

	if len(ids) == 0 {
		return map[uuid.UUID]models.Article{}, nil
	}

	rows, err := s.db.Query(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items, err := scanArticles(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make(map[uuid.UUID]models.Article, len(items))
	for _, a := range items {
		out[a.ID] = a
	}

	return out, nil
}

// ListCandidates возвращает полный кандидатный набор персональной ленты.
// Ключевые слова комбинируются через OR (ILIKE по title/description/content);
// исключённые источники отфильтровываются строго.
func (s *Storage) ListCandidates(ctx context.Context, q models.CandidateQuery) ([]models.Article, error) {
	const op = "storage.postgres.ListCandidates"

	query := qb.Select(articleColumns).
		From("articles").
		OrderBy("published_at DESC", "id DESC")

	if len(q.Categories) > 0 {
		query = query.Where(sq.Expr("lower(category) = ANY(?)", lowered(q.Categories)))
	}
	if len(q.Countries) > 0 {
		query = query.Where(sq.Expr("lower(country) = ANY(?)", lowered(q.Countries)))
	}
	if len(q.Sources) > 0 {
		query = query.Where(sq.Expr("lower(source) = ANY(?)", lowered(q.Sources)))
	}
	if len(q.ExcludedSources) > 0 {
		query = query.Where(sq.Expr("NOT (lower(source) = ANY(?))", lowered(q.ExcludedSources)))
	}
	if kw := keywordPredicate(q.Keywords); kw != nil {
		query = query.Where(kw)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build: %w", op, err)
	}

	rows, err := s.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items, err := scanArticles(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// CategoryCounts — количество статей по категориям.
func (s *Storage) CategoryCounts(ctx context.Context) (map[string]int64, error) {
	const op = "storage.postgres.CategoryCounts"

	rows, err := s.db.Query(ctx, `
	SELECT category, count(*)
	FROM articles
	WHERE category <> ''
	GROUP BY category
	`)
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

// filterPredicates переводит ArticleFilter в набор условий WHERE.
func filterPredicates(f models.ArticleFilter) []sq.Sqlizer {
	var preds []sq.Sqlizer

	if len(f.Categories) > 0 {
		preds = append(preds, sq.Expr("lower(category) = ANY(?)", lowered(f.Categories)))
	}
	if len(f.Countries) > 0 {
		preds = append(preds, sq.Expr("lower(country) = ANY(?)", lowered(f.Countries)))
	}
	if len(f.Sources) > 0 {
		preds = append(preds, sq.Expr("lower(source) = ANY(?)", lowered(f.Sources)))
	}
	if !f.Since.IsZero() {
		preds = append(preds, sq.GtOrEq{"published_at": f.Since.UTC()})
	}
	if !f.Until.IsZero() {
		preds = append(preds, sq.LtOrEq{"published_at": f.Until.UTC()})
	}

	return preds
}

// keywordPredicate строит OR-комбинацию ILIKE-условий по ключевым словам.
func keywordPredicate(keywords []string) sq.Sqlizer {
	var or sq.Or
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		pattern := "%" + escapeLike(kw) + "%"
		or = append(or,
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
			sq.ILike{"content": pattern},
		)
	}
	if len(or) == 0 {
		return nil
	}

	return or
}

// escapeLike экранирует спецсимволы LIKE-шаблона в пользовательском вводе.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func lowered(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(s))
	}
	return out
}

// scanTarget — общий контракт pgx.Row/pgx.Rows для сканирования.
type scanTarget interface {
	Scan(dest ...any) error
}

func scanArticle(row scanTarget) (*models.Article, error) {
	var a models.Article
	if err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&a.Content,
		&a.URL,
		&a.ImageURL,
		&a.Source,
		&a.Category,
		&a.Country,
		&a.PublishedAt,
		&a.FetchedAt,
		&a.BiasScore,
		&a.Reliability,
		&a.TopicID,
	); err != nil {
		return nil, err
	}

	// Нормализация в UTC.
	a.PublishedAt = a.PublishedAt.UTC()
	a.FetchedAt = a.FetchedAt.UTC()

	return &a, nil
}

func scanArticles(rows pgx.Rows) ([]models.Article, error) {
	var items []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		items = append(items, *a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows: %w", rows.Err())
	}

	return items, nil
}
