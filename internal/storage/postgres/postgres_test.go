package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vpolunina/news-bias-dashboard/internal/models"
	"github.com/vpolunina/news-bias-dashboard/internal/storage"
)

// Интеграционные тесты для пакета postgres:
// — поднимают реальный PostgreSQL через testcontainers-go (образ postgres:16-alpine);
// — применяют миграции из ./migrations;
// — проверяют:
//    SaveArticles: upsert по URL (повтор не плодит записей, nil-оценки не затирают известные);
//    ListArticles: фильтры, порядок и Total до среза;
//    ListCandidates: OR по ключевым словам и жёсткое исключение источников;
//    BiasSourceByName: регистронезависимый поиск и ErrNotFound;
//    SavePreferences/PreferencesByIdentity: upsert без затирания истории чтения;
//    RecordInteraction: атомарность журнала и истории, ErrNotFound на несуществующую статью;
//    InteractionsSince/InteractionCountsByCategory: фильтры журнала.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

// repoRootFromThisFile — определяет корень репозитория относительно текущего файла тестов.
// Используется для поиска SQL-миграций в каталоге ./migrations независимо от текущего рабочего каталога.
func repoRootFromThisFile() string {
	// internal/storage/postgres/... -> подняться на 3 уровня до корня.
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", ".."))
}

// readMigration — читает содержимое SQL-миграции из подкаталога ./migrations.
func readMigration(t *testing.T, name string) string {
	t.Helper()
	root := repoRootFromThisFile()
	path := filepath.Join(root, "migrations", name)
	b, err := os.ReadFile(path)
	require.NoError(t, err, "read migration %s", path)
	return string(b)
}

// startPostgres — поднимает PostgreSQL через testcontainers-go,
// применяет миграции и возвращает инициализированное хранилище и функцию очистки.
// Если переменная окружения GO_TEST_INTEGRATION не установлена — тест пропускается.
func startPostgres(t *testing.T) (*Storage, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "docker.io/postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	t.Logf("starting postgres container with image=%q", req.Image)
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
		ProviderType:     tc.ProviderDocker,
	})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, readMigration(t, "1_init_dashboard.up.sql"))
	require.NoError(t, err)

	st, err := New(ctx, dsn)
	require.NoError(t, err)

	cleanup := func() {
		st.Close()
		_ = c.Terminate(context.Background())
	}
	return st, cleanup
}

func ptr(v float64) *float64 { return &v }

func testArticle(title, url, source, category, country string, published time.Time) models.Article {
	return models.Article{
		Title:       title,
		Description: "about " + title,
		URL:         url,
		Source:      source,
		Category:    category,
		Country:     country,
		PublishedAt: published,
		FetchedAt:   published,
	}
}

func TestIntegration_SaveArticles_UpsertByURL(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	published := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	first := testArticle("Climate Summit", "https://e/climate", "BBC", "environment", "gb", published)
	first.BiasScore = ptr(-0.3)
	first.Reliability = ptr(0.8)
	require.NoError(t, st.SaveArticles(ctx, []models.Article{first}))

	page, err := st.ListArticles(ctx, models.ArticleFilter{}, models.PageRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	savedID := page.Items[0].ID
	require.NotEqual(t, uuid.Nil, savedID)

	// Повторный фетч той же статьи: ID стабилен, nil-оценки не затирают известные.
	second := testArticle("Climate Summit Updated", "https://e/climate", "BBC", "environment", "gb", published)
	require.NoError(t, st.SaveArticles(ctx, []models.Article{second}))

	got, err := st.ArticleByID(ctx, savedID)
	require.NoError(t, err)
	require.Equal(t, "Climate Summit Updated", got.Title)
	require.NotNil(t, got.BiasScore)
	require.InDelta(t, -0.3, *got.BiasScore, 1e-9)
	require.NotNil(t, got.Reliability)
	require.InDelta(t, 0.8, *got.Reliability, 1e-9)

	page, err = st.ListArticles(ctx, models.ArticleFilter{}, models.PageRequest{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total, "upsert keeps a single row per URL")
}

func TestIntegration_ListArticles_FiltersAndTotal(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, st.SaveArticles(ctx, []models.Article{
		testArticle("A1", "https://e/1", "BBC", "politics", "gb", base.Add(3*time.Hour)),
		testArticle("A2", "https://e/2", "CNN", "politics", "us", base.Add(2*time.Hour)),
		testArticle("A3", "https://e/3", "BBC", "business", "gb", base.Add(time.Hour)),
	}))

	page, err := st.ListArticles(ctx, models.ArticleFilter{Categories: []string{"POLITICS"}}, models.PageRequest{Limit: 1})
	require.NoError(t, err)
	require.Equal(t, int64(2), page.Total, "total counts the filtered set before the slice")
	require.Len(t, page.Items, 1)
	require.Equal(t, "A1", page.Items[0].Title, "fresh first")

	page, err = st.ListArticles(ctx, models.ArticleFilter{
		Categories: []string{"politics"},
		Sources:    []string{"bbc"},
	}, models.PageRequest{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	require.Equal(t, "A1", page.Items[0].Title)

	page, err = st.ListArticles(ctx, models.ArticleFilter{Since: base.Add(90 * time.Minute)}, models.PageRequest{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), page.Total)
}

func TestIntegration_ListCandidates_KeywordsAndExclusion(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	climate := testArticle("Climate Summit Reached", "https://e/1", "BBC", "environment", "gb", base.Add(time.Hour))
	market := testArticle("Stock Market Rises", "https://e/2", "CNN", "business", "us", base)
	blocked := testArticle("Climate Editorial", "https://e/3", "Fox News", "environment", "us", base.Add(2*time.Hour))
	require.NoError(t, st.SaveArticles(ctx, []models.Article{climate, market, blocked}))

	got, err := st.ListCandidates(ctx, models.CandidateQuery{
		Keywords:        []string{"climate", "market"},
		ExcludedSources: []string{"fox news"},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Climate Summit Reached", got[0].Title, "recency order")
	require.Equal(t, "Stock Market Rises", got[1].Title)
}

func TestIntegration_BiasSources(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, st.SeedBiasSources(ctx, models.DefaultBiasSources()))
	// Повторный сев идемпотентен.
	require.NoError(t, st.SeedBiasSources(ctx, models.DefaultBiasSources()))

	got, err := st.BiasSourceByName(ctx, "  REUTERS ")
	require.NoError(t, err)
	require.Equal(t, "Reuters", got.Name)

	_, err = st.BiasSourceByName(ctx, "unknown outlet")
	require.ErrorIs(t, err, storage.ErrNotFound)

	all, err := st.ListBiasSources(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(models.DefaultBiasSources()))
}

func TestIntegration_Preferences_UpsertKeepsHistory(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	id := models.UserIdentity("u1")

	_, err := st.PreferencesByIdentity(ctx, id)
	require.ErrorIs(t, err, storage.ErrNotFound)

	pref := models.EmptyPreference(id)
	pref.Interests = []string{"climate"}
	pref.Categories = []string{"politics"}
	saved, err := st.SavePreferences(ctx, pref)
	require.NoError(t, err)
	require.Equal(t, []string{"climate"}, saved.Interests)
	require.Empty(t, saved.ReadingHistory)

	// Просмотр наполняет историю.
	article := testArticle("A1", "https://e/1", "BBC", "politics", "gb", time.Now().UTC())
	require.NoError(t, st.SaveArticles(ctx, []models.Article{article}))
	page, err := st.ListArticles(ctx, models.ArticleFilter{}, models.PageRequest{Limit: 1})
	require.NoError(t, err)
	articleID := page.Items[0].ID

	_, err = st.RecordInteraction(ctx, models.Interaction{
		Identity:  id,
		ArticleID: articleID,
		Kind:      models.InteractionView,
	}, true)
	require.NoError(t, err)

	// Повторный upsert списков не затирает историю чтения.
	pref.Interests = []string{"economy"}
	saved, err = st.SavePreferences(ctx, pref)
	require.NoError(t, err)
	require.Equal(t, []string{"economy"}, saved.Interests)
	require.Equal(t, []uuid.UUID{articleID}, saved.ReadingHistory)
}

func TestIntegration_RecordInteraction(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	id := models.SessionIdentity("s1")
	base := time.Now().UTC().Truncate(time.Millisecond)

	require.NoError(t, st.SaveArticles(ctx, []models.Article{
		testArticle("A1", "https://e/1", "BBC", "politics", "gb", base.Add(time.Hour)),
		testArticle("A2", "https://e/2", "CNN", "business", "us", base),
	}))
	page, err := st.ListArticles(ctx, models.ArticleFilter{}, models.PageRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, "A1", page.Items[0].Title)
	first, second := page.Items[0].ID, page.Items[1].ID

	// Несуществующая статья — ErrNotFound, журнал не растёт.
	_, err = st.RecordInteraction(ctx, models.Interaction{
		Identity:  id,
		ArticleID: uuid.New(),
		Kind:      models.InteractionClick,
	}, false)
	require.ErrorIs(t, err, storage.ErrNotFound)

	// view обновляет историю, click — нет.
	_, err = st.RecordInteraction(ctx, models.Interaction{Identity: id, ArticleID: first, Kind: models.InteractionView}, true)
	require.NoError(t, err)
	_, err = st.RecordInteraction(ctx, models.Interaction{Identity: id, ArticleID: second, Kind: models.InteractionView}, true)
	require.NoError(t, err)
	_, err = st.RecordInteraction(ctx, models.Interaction{Identity: id, ArticleID: first, Kind: models.InteractionClick}, false)
	require.NoError(t, err)

	pref, err := st.PreferencesByIdentity(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{second, first}, pref.ReadingHistory, "fresh view first, no duplicates")

	// Повторный просмотр переносит запись в начало.
	_, err = st.RecordInteraction(ctx, models.Interaction{Identity: id, ArticleID: first, Kind: models.InteractionView}, true)
	require.NoError(t, err)
	pref, err = st.PreferencesByIdentity(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{first, second}, pref.ReadingHistory)

	got, err := st.InteractionsSince(ctx, id, []models.InteractionKind{models.InteractionClick}, base.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, first, got[0].ArticleID)

	// Чужая идентичность журнал не видит.
	got, err = st.InteractionsSince(ctx, models.SessionIdentity("s2"), nil, base.Add(-time.Hour))
	require.NoError(t, err)
	require.Empty(t, got)

	counts, err := st.InteractionCountsByCategory(ctx, base.Add(-time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(3), counts["politics"])
	require.Equal(t, int64(1), counts["business"])
}

func TestIntegration_ContextDeadline(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := st.ListArticles(ctx, models.ArticleFilter{}, models.PageRequest{Limit: 1})
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
