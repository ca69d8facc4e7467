// ingest — контракты и реализации внешних поставщиков статей.
package ingest

import (
	"context"
	"errors"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
)

// ErrUnavailable — провайдер недоступен или ответил ошибкой.
// Транспортный слой: 503 с подсказкой повторить позже.
var ErrUnavailable = errors.New("upstream unavailable")

// FetchQuery — параметры запроса к провайдеру.
type FetchQuery struct {
	// Keywords — поисковая строка (провайдер-специфичный синтаксис).
	Keywords string
	// Categories/Countries — включающие фильтры.
	Categories []string
	Countries  []string
	Limit      int32
	Offset     int32
}

// Result — пачка статей и общий размер выборки у провайдера.
type Result struct {
	Items []models.Article
	Total int64
}

// Source — внешний поставщик статей.
//
// Реализации: Mediastack (прод) и детерминированный генератор (dev/тесты).
// Генератор — конфигурация разработки, а не фолбэк при сбое прода.
type Source interface {
	Fetch(ctx context.Context, q FetchQuery) (*Result, error)
}
