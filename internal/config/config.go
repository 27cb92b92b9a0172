// Package config loads service configuration from the environment and
// optional .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	Catalog CatalogConfig
	Store   StoreConfig
	Map     MapConfig

	SearchDebounce time.Duration
	MaxSessions    int
	StaticDir      string
	AllowedOrigins []string
	UnkeyedStops   string
}

type CatalogConfig struct {
	Source   string // file | http | sql
	Path     string
	URL      string
	Timeout  time.Duration
	SeedPath string
}

type StoreConfig struct {
	Backend     string // memory | sqlite | postgres | redis
	DBPath      string
	DatabaseURL string
	RedisURL    string
	CacheSize   int
}

type MapConfig struct {
	CenterLat float64
	CenterLng float64
	Zoom      int
}

// Load reads .env then .env.local (which overrides it) and the process
// environment. Missing files are not an error.
func Load() *Config {
	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")

	return &Config{
		Port: Get("PORT", "8080"),
		Env:  Get("APP_ENV", "development"),
		Catalog: CatalogConfig{
			Source:   strings.ToLower(Get("CATALOG_SOURCE", "file")),
			Path:     Get("STOPS_PATH", "data/stops.json"),
			URL:      Get("STOPS_URL", ""),
			Timeout:  time.Duration(getInt("STOPS_TIMEOUT_SECONDS", 10)) * time.Second,
			SeedPath: Get("SEED_PATH", "data/stops.json"),
		},
		Store: StoreConfig{
			Backend:     strings.ToLower(Get("STORE_BACKEND", "memory")),
			DBPath:      Get("DB_PATH", "data/app.db"),
			DatabaseURL: Get("DATABASE_URL", ""),
			RedisURL:    Get("REDIS_URL", "redis://localhost:6379/0"),
			CacheSize:   getInt("STORE_CACHE_SIZE", 4096),
		},
		Map: MapConfig{
			CenterLat: getFloat("MAP_CENTER_LAT", 42.9956),
			CenterLng: getFloat("MAP_CENTER_LNG", -71.4548),
			Zoom:      getInt("MAP_ZOOM", 14),
		},
		SearchDebounce: time.Duration(getInt("SEARCH_DEBOUNCE_MS", 250)) * time.Millisecond,
		MaxSessions:    getInt("MAX_SESSIONS", 1024),
		StaticDir:      Get("STATIC_DIR", ""),
		AllowedOrigins: getList("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		UnkeyedStops:   strings.ToLower(Get("UNKEYED_STOPS", "show")),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks that the selected backends have what they need.
func (c *Config) Validate() error {
	var errs []error

	switch c.Catalog.Source {
	case "file":
		if strings.TrimSpace(c.Catalog.Path) == "" {
			errs = append(errs, errors.New("STOPS_PATH is required for CATALOG_SOURCE=file"))
		}
	case "http":
		if strings.TrimSpace(c.Catalog.URL) == "" {
			errs = append(errs, errors.New("STOPS_URL is required for CATALOG_SOURCE=http"))
		}
	case "sql":
		if c.Store.Backend != "sqlite" && c.Store.Backend != "postgres" {
			errs = append(errs, errors.New("CATALOG_SOURCE=sql needs STORE_BACKEND=sqlite or postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CATALOG_SOURCE %q", c.Catalog.Source))
	}

	switch c.Store.Backend {
	case "memory", "sqlite", "redis":
	case "postgres":
		if strings.TrimSpace(c.Store.DatabaseURL) == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for STORE_BACKEND=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend))
	}

	switch c.UnkeyedStops {
	case "show", "filter":
	default:
		errs = append(errs, fmt.Errorf("UNKEYED_STOPS must be show or filter, got %q", c.UnkeyedStops))
	}

	if c.SearchDebounce < 0 {
		errs = append(errs, errors.New("SEARCH_DEBOUNCE_MS must not be negative"))
	}
	if c.MaxSessions < 1 {
		errs = append(errs, errors.New("MAX_SESSIONS must be at least 1"))
	}

	return errors.Join(errs...)
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
