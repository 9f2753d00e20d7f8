package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/georgemunganga/fellbacher-shop/internal/config"
	"github.com/georgemunganga/fellbacher-shop/internal/httpx"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/auth"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/booking"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/cart"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/catalog"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/order"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/preference"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/storage"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/user"
	"github.com/georgemunganga/fellbacher-shop/internal/modules/wishlist"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func serve(c *cli.Context) error {
	cfg, logger, err := load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, closeStorage, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: newRouter(cfg, kv, logger),
	}

	errc := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("storefront API starting")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(cfg *config.Config, kv storage.Store, logger *log.Logger) *chi.Mux {
	tokens := auth.NewTokens(cfg.SessionSecret, cfg.SessionTTL)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(httpx.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{auth.TokenHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(auth.Sessions(tokens, logger))

	// ── Catalog ─────────────────────────────────────────────
	fetcher, store := newCatalog(cfg, logger)
	catalogService := catalog.NewService(fetcher, store, logger)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Identity ────────────────────────────────────────────
	cartService := cart.NewService(kv, catalogService, logger)
	wishlistService := wishlist.NewService(kv, logger)

	userService := user.NewService(user.NewRepository(kv))
	authService := auth.NewService(userService, kv, logger, cartService, wishlistService)
	auth.NewHandler(authService).RegisterRoutes(router)
	requireLogin := auth.RequireLogin(authService)

	// ── Session stores ──────────────────────────────────────
	cart.NewHandler(cartService, requireLogin).RegisterRoutes(router)
	wishlist.NewHandler(wishlistService, requireLogin).RegisterRoutes(router)

	orderService := order.NewService(kv, cartService, logger)
	order.NewHandler(orderService, requireLogin).RegisterRoutes(router)

	bookingService := booking.NewService(kv, catalogService, logger)
	booking.NewHandler(bookingService, requireLogin).RegisterRoutes(router)

	preference.NewHandler(preference.NewService(kv, logger)).RegisterRoutes(router)

	return router
}
