// service содержит бизнес-логику дашборда: разрешение предвзятости,
// персональные настройки, журнал взаимодействий, персональную ленту,
// тренды и инжест статей.
package service

import (
	"errors"

	"github.com/vpolunina/news-bias-dashboard/internal/cache"
	"github.com/vpolunina/news-bias-dashboard/internal/config"
	"github.com/vpolunina/news-bias-dashboard/internal/ingest"
	"github.com/vpolunina/news-bias-dashboard/internal/storage"
)

var (
	// ErrNotFound — сущность отсутствует.
	// Транспорт: 404.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument — некорректные входные аргументы.
	// Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUpstreamUnavailable — внешний провайдер статей недоступен.
	// Транспорт: 503 с подсказкой повторить.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Service — описывает бизнес-логику дашборда.
type Service struct {
	storage storage.Storage
	cache   cache.FeedCache
	source  ingest.Source
	cfg     config.Config
}

// New создает новый экземпляр Service.
func New(storage storage.Storage, feedCache cache.FeedCache, source ingest.Source, cfg config.Config) *Service {
	if feedCache == nil {
		feedCache = cache.NewNoop()
	}

	return &Service{
		storage: storage,
		cache:   feedCache,
		source:  source,
		cfg:     cfg,
	}
}

// normalizeLimit приводит запрошенный размер страницы к [Default, Max].
func (s *Service) normalizeLimit(limit int32) int32 {
	if limit <= 0 {
		limit = s.cfg.Limits.Default
	}
	if s.cfg.Limits.Max > 0 && limit > s.cfg.Limits.Max {
		limit = s.cfg.Limits.Max
	}

	return limit
}
