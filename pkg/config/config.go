package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	CacheDriverRedis    = "redis"
	CacheDriverPostgres = "postgres"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8000"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Cache struct {
		Driver        string        `env:"CACHE_DRIVER" env-default:"redis" env-description:"redis or postgres"`
		TTL           time.Duration `env:"CACHE_TTL" env-default:"300s"`
		RedisAddr     string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
		RedisPassword string        `env:"REDIS_PASSWORD"`
		RedisDB       int           `env:"REDIS_DB" env-default:"0"`
		CleanupCron   string        `env:"CACHE_CLEANUP_CRON" env-default:"*/10 * * * *"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Facebook struct {
		KeysPath string        `env:"FACEBOOK_KEYS_PATH" env-default:"rapid_api_keys.json"`
		Host     string        `env:"FACEBOOK_API_HOST" env-default:"facebook-scraper3.p.rapidapi.com"`
		BaseURL  string        `env:"FACEBOOK_API_URL" env-default:"https://facebook-scraper3.p.rapidapi.com"`
		Timeout  time.Duration `env:"FACEBOOK_TIMEOUT" env-default:"30s"`
	}
	Twitter struct {
		CookiesPath string `env:"TWITTER_COOKIES_PATH" env-default:"x_cookies.json"`
		MaxPosts    int    `env:"TWITTER_MAX_POSTS" env-default:"3"`
	}
	Instagram struct {
		SessionPath string `env:"INSTAGRAM_SESSION_PATH" env-default:"./goinsta-session"`
		MaxPosts    int    `env:"INSTAGRAM_MAX_POSTS" env-default:"3"`
	}
	Fetcher struct {
		PostCount   int           `env:"FETCHER_POST_COUNT" env-default:"3"`
		Concurrency int           `env:"FETCHER_CONCURRENCY" env-default:"4"`
		Timeout     time.Duration `env:"FETCHER_TIMEOUT" env-default:"45s"`
	}
	Telegram struct {
		User  int64  `env:"TELEGRAM_USER"`
		Token string `env:"TELEGRAM_TOKEN"`
	}
}

// GetDSN returns the Postgres connection URL.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		loaded, err := Load()
		if err != nil {
			help, _ := cleanenv.GetDescription(&Config{}, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
		cfg = loaded
	})
	return cfg, nil
}

// Load reads the environment, after merging an optional .env file, into a fresh Config.
func Load() (*Config, error) {
	// .env is optional; variables already set in the environment win.
	_ = godotenv.Load()

	c := &Config{}
	if err := cleanenv.ReadEnv(c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	switch c.Cache.Driver {
	case CacheDriverRedis, CacheDriverPostgres:
	default:
		return fmt.Errorf("unknown cache driver %q", c.Cache.Driver)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.Cache.TTL)
	}
	if c.Fetcher.PostCount <= 0 {
		return fmt.Errorf("fetcher post count must be positive, got %d", c.Fetcher.PostCount)
	}
	if c.Fetcher.Concurrency <= 0 {
		c.Fetcher.Concurrency = 1
	}
	return nil
}
