package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"stop-viewer-service/internal/adapters/repositories"
	"stop-viewer-service/internal/config"
	"stop-viewer-service/internal/platform/db"
)

// dbtool prepares a SQL backend: it creates the schema and loads the stop
// catalog from SEED_PATH into the stops table. STORE_BACKEND picks the
// database (sqlite uses DB_PATH, postgres uses DATABASE_URL).
func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	conn, dialect, err := open(cfg)
	if err != nil {
		logger.Error("open database failed", "err", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := initAndSeed(logger, conn, dialect, cfg.Catalog.SeedPath); err != nil {
		logger.Error("dbtool failed", "err", err)
		os.Exit(1)
	}
}

func open(cfg *config.Config) (*sql.DB, db.Dialect, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		conn, err := db.OpenSQLite(cfg.Store.DBPath)
		return conn, db.DialectSQLite, err
	case "postgres":
		if cfg.Store.DatabaseURL == "" {
			return nil, "", fmt.Errorf("DATABASE_URL is required")
		}
		conn, err := db.Open(cfg.Store.DatabaseURL)
		return conn, db.DialectPostgres, err
	default:
		return nil, "", fmt.Errorf("STORE_BACKEND must be sqlite or postgres, got %q", cfg.Store.Backend)
	}
}

func initAndSeed(logger *slog.Logger, conn *sql.DB, dialect db.Dialect, seedPath string) error {
	logger.Info("initializing database schema...")
	if err := repositories.InitSchema(conn, dialect); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	logger.Info("schema ready")

	logger.Info("seeding stops...", "path", seedPath)
	n, err := repositories.SeedFromJSON(conn, dialect, seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	logger.Info("seeding complete", "stops", n)

	return nil
}
