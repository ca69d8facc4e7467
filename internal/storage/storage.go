// storage определяет контракты доступа к хранилищу дашборда.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
)

// ArticleStorage описывает операции над сущностью models.Article.
//
// Хранилище статей — процессно-глобальное и read-mostly: конкурентное
// чтение безопасно, записи редки (инжест) с last-writer-wins семантикой.
type ArticleStorage interface {
	// SaveArticles сохраняет пачку статей (upsert по каноническому URL).
	// Оценки предвзятости/надёжности не затираются пустыми значениями.
	SaveArticles(ctx context.Context, items []models.Article) error
	// ListArticles возвращает страницу статей по общим фильтрам,
	// отсортированных по (published_at DESC, id DESC).
	ListArticles(ctx context.Context, filter models.ArticleFilter, page models.PageRequest) (*models.ArticlePage, error)
	// ArticleByID возвращает статью по идентификатору; отсутствие — ErrNotFound.
	ArticleByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
	// ArticlesByIDs возвращает найденные статьи по списку идентификаторов.
	// Отсутствующие идентификаторы молча пропускаются.
	ArticlesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Article, error)
	// ListCandidates возвращает полный кандидатный набор для персональной
	// ленты (без пагинации), отсортированный по (published_at DESC, id DESC).
	ListCandidates(ctx context.Context, q models.CandidateQuery) ([]models.Article, error)
	// CategoryCounts — количество статей по категориям (фолбэк трендов).
	CategoryCounts(ctx context.Context) (map[string]int64, error)
}

// BiasStorage описывает операции над таблицей предвзятости источников.
type BiasStorage interface {
	// SeedBiasSources идемпотентно заполняет таблицу (upsert по имени).
	SeedBiasSources(ctx context.Context, items []models.BiasSource) error
	// BiasSourceByName — регистронезависимый поиск; отсутствие — ErrNotFound.
	BiasSourceByName(ctx context.Context, name string) (*models.BiasSource, error)
	// ListBiasSources возвращает все записи, отсортированные по имени.
	ListBiasSources(ctx context.Context) ([]models.BiasSource, error)
}

// PreferenceStorage описывает операции над персональными настройками.
type PreferenceStorage interface {
	// PreferencesByIdentity возвращает запись идентичности; отсутствие — ErrNotFound.
	PreferencesByIdentity(ctx context.Context, id models.Identity) (*models.Preference, error)
	// SavePreferences создаёт или обновляет явные списки предпочтений.
	// История чтения при этом не изменяется.
	SavePreferences(ctx context.Context, pref models.Preference) (*models.Preference, error)
}

// InteractionStorage описывает операции над журналом взаимодействий.
type InteractionStorage interface {
	// RecordInteraction атомарно добавляет запись журнала и, при
	// updateHistory=true, обновляет историю чтения идентичности
	// (перенос в начало, обрезка до models.ReadingHistoryLimit).
	// Либо происходит и то и другое, либо ничего.
	RecordInteraction(ctx context.Context, inter models.Interaction, updateHistory bool) (*models.Interaction, error)
	// InteractionsSince возвращает взаимодействия идентичности указанных
	// видов, начиная с отметки since.
	InteractionsSince(ctx context.Context, id models.Identity, kinds []models.InteractionKind, since time.Time) ([]models.Interaction, error)
	// InteractionCountsByCategory — объём взаимодействий по категориям
	// статей начиная с отметки since (для трендов).
	InteractionCountsByCategory(ctx context.Context, since time.Time) (map[string]int64, error)
}

// Storage задаёт контракт доступа к хранилищу дашборда.
type Storage interface {
	ArticleStorage
	BiasStorage
	PreferenceStorage
	InteractionStorage
	Close()
}
