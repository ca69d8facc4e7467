// models содержит доменные сущности дашборда новостной предвзятости.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Article — доменная сущность статьи.
//
// Особенности:
//   - ID — UUIDv4, выдаётся при инжесте;
//   - временные метки — в UTC;
//   - BiasScore/Reliability — nil, пока оценка не разрешена по таблице источников
//     (nil означает «неизвестно» и отличается от нулевой/центральной оценки);
//   - канонический URL уникален — по нему выполняется upsert при инжесте.
type Article struct {
	// ID — уникальный идентификатор статьи.
	ID uuid.UUID
	// Title — заголовок.
	Title string
	// Description — краткое описание (тизер).
	Description string
	// Content — полный текст, если доступен.
	Content string
	// URL — каноническая ссылка на источник.
	URL string
	// ImageURL — обложка статьи.
	ImageURL string
	// Source — имя источника (издания).
	Source string
	// Category — категория из фиксированного набора провайдера.
	Category string
	// Country — код страны (ISO-2, в нижнем регистре).
	Country string
	// PublishedAt — время публикации у источника. Всегда задано.
	PublishedAt time.Time
	// FetchedAt — время загрузки статьи в хранилище (UTC).
	FetchedAt time.Time
	// BiasScore — политическая предвзятость источника в канонической шкале [-1..1].
	BiasScore *float64
	// Reliability — надёжность источника в канонической шкале [0..1].
	Reliability *float64
	// TopicID — необязательная привязка к сюжету.
	TopicID string
}

// ArticleFilter — фильтры общего списка статей.
// Пустой срез означает «без фильтра по этому измерению».
type ArticleFilter struct {
	Categories []string
	Countries  []string
	Sources    []string
	// Since/Until ограничивают published_at (нулевое значение — без границы).
	Since time.Time
	Until time.Time
}

// PageRequest — limit/offset-пагинация.
//
// Особенности:
//   - Limit == 0 -> серверный default (config.LimitsConfig.Default);
//   - отрицательные значения — ошибка валидации на уровне сервиса.
type PageRequest struct {
	Limit  int32
	Offset int32
}

// ArticlePage — страница статей с общим количеством до среза.
type ArticlePage struct {
	Items  []Article
	Limit  int32
	Offset int32
	// Total — размер отфильтрованного набора до применения limit/offset.
	Total int64
}

// CandidateQuery — запрос кандидатов для персональной ленты.
//
// Семантика:
//   - Keywords — регистронезависимое подстрочное совпадение по title/description/content,
//     комбинируется через OR (достаточно одного совпадения); пустой список — без фильтра;
//   - Categories/Countries/Sources — включающие фильтры (пустой список — без фильтра);
//   - ExcludedSources — строгое исключение: источник из списка не попадает в выдачу.
type CandidateQuery struct {
	Keywords        []string
	Categories      []string
	Countries       []string
	Sources         []string
	ExcludedSources []string
}
