package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"stop-viewer-service/internal/adapters/catalog"
	"stop-viewer-service/internal/adapters/repositories"
	"stop-viewer-service/internal/adapters/store"
	"stop-viewer-service/internal/api"
	"stop-viewer-service/internal/api/sessions"
	"stop-viewer-service/internal/config"
	"stop-viewer-service/internal/domain"
	"stop-viewer-service/internal/platform/db"
	"stop-viewer-service/internal/ports"
	"stop-viewer-service/internal/services"
	"syscall"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (KV backend, catalog source) behind ports and starts the HTTP server.
func main() {
	cfg := config.Load()
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, conn, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	src, err := openCatalogSource(cfg, conn)
	if err != nil {
		return err
	}

	unkeyed, err := services.ParseUnkeyedPolicy(cfg.UnkeyedStops)
	if err != nil {
		return err
	}

	reg, err := sessions.NewRegistry(cfg.MaxSessions, kv, services.ViewerOptions{
		SearchDebounce: cfg.SearchDebounce,
		Unkeyed:        unkeyed,
		MapView: domain.MapView{
			Center: domain.Coordinates{Lat: cfg.Map.CenterLat, Lng: cfg.Map.CenterLng},
			Zoom:   cfg.Map.Zoom,
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer reg.Close()

	// One-shot load. Until it completes, sessions stay not ready; on failure
	// they stay that way.
	go loadCatalog(ctx, logger, src, reg)

	router := api.NewRouter(api.RouterConfig{
		Sessions:       reg,
		AllowedOrigins: cfg.AllowedOrigins,
		StaticDir:      cfg.StaticDir,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "store", cfg.Store.Backend, "catalog", cfg.Catalog.Source)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadCatalog(ctx context.Context, logger *slog.Logger, src ports.CatalogSource, reg *sessions.Registry) {
	start := time.Now()

	cat, err := services.LoadCatalog(ctx, src)
	if err != nil {
		logger.Error("stop catalog load failed; viewer stays not ready", "err", err)
		return
	}

	if n := cat.UnkeyedCount(); n > 0 {
		logger.Warn("catalog has stops without an id; they cannot be selected or favorited", "count", n)
	}
	if n := cat.UnplacedCount(); n > 0 {
		logger.Warn("catalog has stops without coordinates; they are listed but not mapped", "count", n)
	}

	reg.SetCatalog(ctx, cat)
	logger.Info("stop catalog loaded", "stops", cat.Len(), "dur_ms", time.Since(start).Milliseconds())
}

// openStore returns the KV backend, wrapped in a read-through cache, and
// the SQL handle when the backend has one.
func openStore(ctx context.Context, cfg *config.Config) (ports.KVStore, *sql.DB, func(), error) {
	var (
		kv      ports.KVStore
		conn    *sql.DB
		closeFn = func() {}
	)

	switch cfg.Store.Backend {
	case "memory":
		kv = store.NewMemoryKVStore()

	case "sqlite":
		c, err := db.OpenSQLite(cfg.Store.DBPath)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := repositories.InitSchema(c, db.DialectSQLite); err != nil {
			c.Close()
			return nil, nil, nil, err
		}
		kv, conn, closeFn = store.NewSqliteKVStore(c), c, func() { c.Close() }

	case "postgres":
		c, err := db.Open(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := repositories.InitSchema(c, db.DialectPostgres); err != nil {
			c.Close()
			return nil, nil, nil, err
		}
		kv, conn, closeFn = store.NewSQLKVStore(c), c, func() { c.Close() }

	case "redis":
		client, err := store.ConnectRedis(ctx, cfg.Store.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		kv, closeFn = store.NewRedisKVStore(client), func() { client.Close() }

	default:
		return nil, nil, nil, fmt.Errorf("open store: unknown backend %q", cfg.Store.Backend)
	}

	if cfg.Store.CacheSize > 0 && cfg.Store.Backend != "memory" {
		cached, err := store.NewCachedKVStore(kv, cfg.Store.CacheSize)
		if err != nil {
			closeFn()
			return nil, nil, nil, err
		}
		kv = cached
	}

	return kv, conn, closeFn, nil
}

func openCatalogSource(cfg *config.Config, conn *sql.DB) (ports.CatalogSource, error) {
	switch cfg.Catalog.Source {
	case "file":
		return catalog.NewFileCatalogSource(cfg.Catalog.Path), nil
	case "http":
		return catalog.NewHTTPCatalogSource(cfg.Catalog.URL, cfg.Catalog.Timeout)
	case "sql":
		if conn == nil {
			return nil, errors.New("open catalog source: sql source needs a sqlite or postgres store")
		}
		return repositories.NewSQLStopRepository(conn), nil
	default:
		return nil, fmt.Errorf("open catalog source: unknown source %q", cfg.Catalog.Source)
	}
}
