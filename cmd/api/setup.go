package main

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/georgemunganga/fellbacher-shop/internal/config"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/catalog"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/storage"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/woocommerce"
	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// load reads the configuration and builds the root logger from it.
func load() (*config.Config, *log.Logger, error) {
	cfg, dotenv, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := log.New()
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, errors.Wrap(err, "invalid LOG_LEVEL")
	}
	logger.SetLevel(level)
	if cfg.LogFormat == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	}
	if !dotenv {
		logger.Debug("no .env file found, using the process environment")
	}
	return cfg, logger, nil
}

// openStorage connects the configured STORAGE_DRIVER. The returned func releases it.
func openStorage(ctx context.Context, cfg *config.Config, logger log.FieldLogger) (storage.Store, func(), error) {
	logger = logger.WithField("driver", cfg.StorageDriver)

	switch cfg.StorageDriver {
	case "", "memory":
		logger.Warn("using in-memory storage, sessions are lost on restart")
		return storage.NewMemory(), func() {}, nil

	case "postgres":
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to open database")
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, errors.Wrap(err, "failed to connect to the database")
		}
		store, err := storage.NewPostgres(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("connected to the database")
		return store, func() { db.Close() }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, errors.Wrap(err, "failed to connect to redis")
		}
		logger.WithField("addr", cfg.RedisAddr).Info("connected to redis")
		return storage.NewRedis(client, "fellbacher:"), func() { client.Close() }, nil
	}

	return nil, nil, errors.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
}

// newCatalog builds the fetch orchestrator and the catalog store loading through it,
// or through CATALOG_SOURCE_URL when set.
func newCatalog(cfg *config.Config, logger log.FieldLogger) (*catalog.Fetcher, *catalog.Store) {
	client := woocommerce.NewClient(woocommerce.Credentials{
		BaseURL:        cfg.UpstreamURL(),
		ConsumerKey:    cfg.WCConsumerKey,
		ConsumerSecret: cfg.WCConsumerSecret,
	}, nil, cfg.WCTimeout)

	fetcher := catalog.NewFetcher(client, catalog.NewNormalizer(nil), catalog.FetchOptions{
		PerPage:        cfg.WCPerPage,
		Concurrent:     cfg.WCConcurrentPages,
		MaxConcurrency: cfg.WCMaxConcurrency,
	}, logger)

	source := catalog.NewDirectSource(fetcher)
	if cfg.CatalogSourceURL != "" {
		logger.WithField("url", cfg.CatalogSourceURL).Info("catalog store loads through the products endpoint")
		source = catalog.NewBoundarySource(cfg.CatalogSourceURL, &http.Client{Timeout: cfg.WCTimeout})
	}
	return fetcher, catalog.NewStore(source, cfg.CatalogTTL, cfg.CatalogLoadTimeout, logger)
}
