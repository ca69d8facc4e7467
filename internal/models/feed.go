package models

// FeedQuery — параметры запроса персональной ленты.
//
// Override-фильтры сужают сохранённые предпочтения, но никогда не
// расширяют их: при непустом сохранённом списке берётся пересечение.
type FeedQuery struct {
	Limit  int32
	Offset int32
	// Categories/Countries/Sources — query-time override-фильтры.
	Categories []string
	Countries  []string
	Sources    []string
}

// FeedPage — страница персональной ленты.
// Total — размер кандидатного набора после фильтрации, до среза.
type FeedPage struct {
	Items  []Article `json:"items"`
	Limit  int32     `json:"limit"`
	Offset int32     `json:"offset"`
	Total  int64     `json:"total"`
}

// TrendingTopic — категория с объёмом активности за окно наблюдения.
type TrendingTopic struct {
	Topic string
	Count int64
}
