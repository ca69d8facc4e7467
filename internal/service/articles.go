package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
	"github.com/vpolunina/news-bias-dashboard/internal/storage"
)

// ListArticles возвращает страницу общего списка статей по фильтрам.
//
// Ошибки:
// - ErrInvalidArgument — отрицательные limit/offset.
func (s *Service) ListArticles(ctx context.Context, filter models.ArticleFilter, page models.PageRequest) (*models.ArticlePage, error) {
	const op = "service.articles.ListArticles"

	if page.Limit < 0 || page.Offset < 0 {
		return nil, fmt.Errorf("%s: limit/offset must be non-negative: %w", op, ErrInvalidArgument)
	}

	page.Limit = s.normalizeLimit(page.Limit)

	out, err := s.storage.ListArticles(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// ArticleByID возвращает статью по идентификатору.
//
// Ошибки:
// - ErrNotFound — статья отсутствует.
func (s *Service) ArticleByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	const op = "service.articles.ArticleByID"

	if id == uuid.Nil {
		return nil, fmt.Errorf("%s: id is required: %w", op, ErrInvalidArgument)
	}

	article, err := s.storage.ArticleByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: article %s: %w", op, id, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return article, nil
}
