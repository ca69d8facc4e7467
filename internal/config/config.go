// config предоставляет структуру конфигурации дашборда
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env             string                `yaml:"env" env:"ENV" env-default:"local"`
	HTTP            HTTPConfig            `yaml:"http"`
	Metrics         MetricsConfig         `yaml:"metrics"`
	DB              DBConfig              `yaml:"db"`
	Cache           CacheConfig           `yaml:"cache"`
	Ingest          IngestConfig          `yaml:"ingest"`
	Personalization PersonalizationConfig `yaml:"personalization"`
	Limits          LimitsConfig          `yaml:"limits"`
	Timeouts        TimeoutConfig         `yaml:"timeouts"`
}

// HTTPConfig — сетевые настройки публичного HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50080"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// MetricsConfig — отдельный HTTP-листенер для Prometheus.
type MetricsConfig struct {
	Host string `yaml:"host" env:"METRICS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"METRICS_PORT" env-default:"50085"`
}

// Addr возвращает адрес в формате host:port.
func (m MetricsConfig) Addr() string {
	return net.JoinHostPort(m.Host, m.Port)
}

// DBConfig — настройки подключения к базе данных.
// Пустой URL допустим вне prod: сервис поднимается на in-memory хранилище.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL"`
}

// CacheConfig — кэш страниц персональной ленты.
// Пустой URL отключает кэш (используется no-op реализация).
type CacheConfig struct {
	URL    string `yaml:"url" env:"CACHE_URL"`
	Prefix string `yaml:"prefix" env:"CACHE_PREFIX" env-default:"feed:"`
	// FeedTTL — срок жизни закэшированной страницы ленты.
	FeedTTL time.Duration `yaml:"feed_ttl" env:"CACHE_FEED_TTL" env-default:"5m"`
}

// Enabled — true, если кэш сконфигурирован.
func (c CacheConfig) Enabled() bool { return c.URL != "" }

// IngestConfig — параметры источника статей.
type IngestConfig struct {
	// Provider — "mediastack" или "sample" (детерминированные данные для dev/тестов).
	Provider string `yaml:"provider" env:"INGEST_PROVIDER" env-default:"sample"`
	APIKey   string `yaml:"api_key" env:"MEDIASTACK_API_KEY"`
	BaseURL  string `yaml:"base_url" env:"MEDIASTACK_BASE_URL" env-default:"http://api.mediastack.com/v1"`
	// Timeout — таймаут одного обращения к провайдеру.
	Timeout time.Duration `yaml:"timeout" env:"INGEST_TIMEOUT" env-default:"10s"`
	// Interval — период фонового инжеста; 0 отключает фоновый цикл.
	Interval time.Duration `yaml:"interval" env:"INGEST_INTERVAL" env-default:"15m"`
	// BatchLimit — сколько статей запрашивать за один проход (провайдер ограничивает сотней).
	BatchLimit int32 `yaml:"batch_limit" env:"INGEST_BATCH_LIMIT" env-default:"100"`
	// SampleSeed — зерно детерминированного генератора (provider=sample).
	SampleSeed int64 `yaml:"sample_seed" env:"INGEST_SAMPLE_SEED" env-default:"1"`
}

// PersonalizationConfig — параметры агрегации сигналов и ранжирования.
type PersonalizationConfig struct {
	// Window — скользящее окно анализа взаимодействий.
	Window time.Duration `yaml:"window" env:"PERSONALIZATION_WINDOW" env-default:"168h"`
	// MinFrequency — минимальная частота категории/источника для производного интереса.
	MinFrequency int `yaml:"min_frequency" env:"PERSONALIZATION_MIN_FREQUENCY" env-default:"2"`
	// TopCategories/TopSources — сколько производных интересов добавлять к ключевым словам.
	TopCategories int `yaml:"top_categories" env:"PERSONALIZATION_TOP_CATEGORIES" env-default:"3"`
	TopSources    int `yaml:"top_sources" env:"PERSONALIZATION_TOP_SOURCES" env-default:"2"`
	// MaxKeywords — верхняя граница объединённого списка ключевых слов.
	MaxKeywords int `yaml:"max_keywords" env:"PERSONALIZATION_MAX_KEYWORDS" env-default:"10"`
	// HideRead — подавлять ли статьи из истории чтения в выдаче.
	HideRead bool `yaml:"hide_read" env:"PERSONALIZATION_HIDE_READ" env-default:"true"`
}

// LimitsConfig — серверные лимиты на выдачу.
type LimitsConfig struct {
	// Применяется при запросе с limit=0.
	Default int32 `yaml:"default" env:"DEFAULT_LIMIT" env-default:"25"`
	// Верхняя граница для limit.
	Max int32 `yaml:"max" env:"MAX_LIMIT" env-default:"100"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE" env-default:"15s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.Env == "prod" && c.DB.URL == "" {
		return fmt.Errorf("db.url is required in prod")
	}
	switch c.Ingest.Provider {
	case "mediastack":
		if c.Ingest.APIKey == "" {
			return fmt.Errorf("ingest.api_key is required for provider mediastack")
		}
		if c.Ingest.BaseURL == "" {
			return fmt.Errorf("ingest.base_url is required for provider mediastack")
		}
	case "sample":
	default:
		return fmt.Errorf("ingest.provider must be mediastack or sample")
	}
	if c.Ingest.BatchLimit <= 0 {
		return fmt.Errorf("ingest.batch_limit must be > 0")
	}
	if c.Personalization.Window < time.Hour {
		return fmt.Errorf("personalization.window must be at least 1h")
	}
	if c.Personalization.MinFrequency < 1 {
		return fmt.Errorf("personalization.min_frequency must be >= 1")
	}
	if c.Personalization.TopCategories < 0 || c.Personalization.TopSources < 0 {
		return fmt.Errorf("personalization.top_categories/top_sources must be >= 0")
	}
	if c.Personalization.MaxKeywords <= 0 {
		return fmt.Errorf("personalization.max_keywords must be > 0")
	}
	if c.Limits.Default <= 0 {
		return fmt.Errorf("limits.default must be > 0")
	}
	if c.Limits.Max <= 0 {
		return fmt.Errorf("limits.max must be > 0")
	}
	if c.Limits.Default > c.Limits.Max {
		return fmt.Errorf("limits.default must be <= limits.max")
	}
	if c.Cache.Enabled() && c.Cache.FeedTTL <= 0 {
		return fmt.Errorf("cache.feed_ttl must be > 0 when cache is enabled")
	}
	return nil
}
