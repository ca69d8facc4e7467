package models

import (
	"time"

	"github.com/google/uuid"
)

// ReadingHistoryLimit — ёмкость истории чтения: при переполнении
// вытесняется самая старая запись.
const ReadingHistoryLimit = 100

// Preference — персональные настройки идентичности.
//
// Особенности:
//   - создаётся лениво при первом чтении/записи или первом взаимодействии;
//   - ReadingHistory хранит последние просмотренные статьи, самые свежие — в начале;
//     каждая статья встречается не более одного раза;
//   - запись никогда не удаляется.
type Preference struct {
	Identity Identity
	// Interests — явные интересы (свободные ключевые слова), порядок сохраняется.
	Interests []string
	// Categories — предпочитаемые категории.
	Categories []string
	// Sources — предпочитаемые источники.
	Sources []string
	// Countries — предпочитаемые страны.
	Countries []string
	// ExcludedSources — источники, которые никогда не попадают в выдачу.
	ExcludedSources []string
	// ReadingHistory — ограниченная история чтения (см. ReadingHistoryLimit).
	ReadingHistory []uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EmptyPreference — пустая запись для идентичности без сохранённых настроек.
func EmptyPreference(id Identity) Preference {
	return Preference{
		Identity:        id,
		Interests:       []string{},
		Categories:      []string{},
		Sources:         []string{},
		Countries:       []string{},
		ExcludedSources: []string{},
		ReadingHistory:  []uuid.UUID{},
	}
}

// PushHistory добавляет статью в начало истории чтения.
//
// Правила:
//   - повторный просмотр переносит запись в начало (дубликатов нет);
//   - при превышении limit вытесняется хвост (самая старая запись).
func PushHistory(history []uuid.UUID, id uuid.UUID, limit int) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(history)+1)
	out = append(out, id)

	for _, h := range history {
		if h == id {
			continue
		}
		out = append(out, h)
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}
