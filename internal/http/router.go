package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vpolunina/news-bias-dashboard/internal/http/handlers"
	"github.com/vpolunina/news-bias-dashboard/internal/http/middleware"
	"github.com/vpolunina/news-bias-dashboard/internal/service"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(),            // счётчики/гистограммы по шаблону маршрута
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	// Зависимости хендлеров.
	h := handlers.New(svc)

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// articles
	r.Get("/articles", h.ListArticles)
	r.Get("/articles/{id}", h.GetArticleByID)
	r.Post("/articles/refresh", h.RefreshArticles)

	// personalized feed
	r.Get("/feed/personalized", h.PersonalizedFeed)

	// preferences
	r.Get("/preferences", h.GetPreferences)
	r.Put("/preferences", h.UpdatePreferences)

	// interactions
	r.Post("/interactions", h.CreateInteraction)

	// trending
	r.Get("/trending", h.TrendingTopics)

	// bias table
	r.Get("/bias-sources", h.ListBiasSources)
	r.Get("/bias-sources/{name}", h.GetBiasSource)

	// health
	r.Get("/healthz", h.Healthz)
}
