package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config holds every environment-driven setting of the storefront API.
type Config struct {
	Port string `envconfig:"APP_PORT" default:"8080"`

	WCStoreURL        string        `envconfig:"WC_STORE_URL"`
	WCPublicURL       string        `envconfig:"NEXT_PUBLIC_WC_URL"`
	WCConsumerKey     string        `envconfig:"WC_CONSUMER_KEY"`
	WCConsumerSecret  string        `envconfig:"WC_CONSUMER_SECRET"`
	WCPerPage         int           `envconfig:"WC_PER_PAGE" default:"100"`
	WCConcurrentPages bool          `envconfig:"WC_CONCURRENT_PAGES" default:"true"`
	WCMaxConcurrency  int           `envconfig:"WC_MAX_CONCURRENCY" default:"4"`
	WCTimeout         time.Duration `envconfig:"WC_TIMEOUT" default:"30s"`

	CatalogTTL         time.Duration `envconfig:"CATALOG_TTL" default:"5m"`
	CatalogLoadTimeout time.Duration `envconfig:"CATALOG_LOAD_TIMEOUT" default:"2m"`
	CatalogSourceURL   string        `envconfig:"CATALOG_SOURCE_URL"`

	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"memory"`
	DatabaseURL   string `envconfig:"DATABASE_URL"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	SessionSecret string        `envconfig:"SESSION_SECRET" default:"change-me"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads an optional .env file and decodes the environment.
// The returned bool reports whether a .env file was found.
func Load() (*Config, bool, error) {
	dotenv := godotenv.Load() == nil

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, dotenv, errors.Wrap(err, "failed to parse environment")
	}
	return &cfg, dotenv, nil
}

// UpstreamURL returns the commerce API base URL, preferring WC_STORE_URL.
func (c *Config) UpstreamURL() string {
	if c.WCStoreURL != "" {
		return c.WCStoreURL
	}
	return c.WCPublicURL
}
