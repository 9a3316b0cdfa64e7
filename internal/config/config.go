// Package config provides centralized configuration loaded from environment
// variables (with optional .env support) plus the injected NFL team catalog
// used by the parsers.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the scraper, exporter and API.
type Config struct {
	// Storage
	DBPath string `validate:"required"`

	// Team this archive covers. The scraper is single-franchise by design.
	TeamName string `validate:"required"`
	TeamCity string `validate:"required"`
	TeamAbbr string `validate:"required"`

	// Scrape
	FirstSeason  int           `validate:"gte=1920"`
	RequestDelay time.Duration `validate:"gt=0"`
	PFABaseURL   string        `validate:"required,url"`
	FDBBaseURL   string        `validate:"required,url"`
	PFAUserAgent string
	FDBUserAgent string

	// Optional page cache
	RedisURL     string
	PageCacheTTL time.Duration

	// Export
	OutputDir string

	// Replication (Turso/libSQL)
	TursoURL   string
	TursoToken string

	// API server
	APIPort     string
	CORSOrigins []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		DBPath:       getEnv("GRIDIRON_DB", "gridiron.db"),
		TeamName:     getEnv("TEAM_NAME", "New Orleans Saints"),
		TeamCity:     getEnv("TEAM_CITY", "New Orleans"),
		TeamAbbr:     getEnv("TEAM_ABBR", "NO"),
		FirstSeason:  getEnvInt("FIRST_SEASON", 1967),
		RequestDelay: getEnvDuration("REQUEST_DELAY", time.Second),
		PFABaseURL:   getEnv("PFA_BASE_URL", "https://www.profootballarchives.com"),
		FDBBaseURL:   getEnv("FDB_BASE_URL", "https://www.footballdb.com"),
		PFAUserAgent: getEnv("PFA_USER_AGENT", "GridironArchive/1.0 (historical research project)"),
		FDBUserAgent: getEnv("FDB_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
		RedisURL:     os.Getenv("REDIS_URL"),
		PageCacheTTL: getEnvDuration("PAGE_CACHE_TTL", 24*time.Hour),
		OutputDir:    getEnv("OUTPUT_DIR", "docs/data"),
		TursoURL:     os.Getenv("TURSO_DATABASE_URL"),
		TursoToken:   os.Getenv("TURSO_AUTH_TOKEN"),
		APIPort:      getEnv("API_PORT", "8080"),
		CORSOrigins:  []string{getEnv("CORS_ORIGIN", "*")},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// TeamNameSlug returns the URL slug of the full franchise name
// ("new-orleans-saints"), used in FootballDB team paths.
func (c *Config) TeamNameSlug() string {
	return slugify(c.TeamName)
}

// TeamCitySlug returns the URL slug of the city ("new-orleans"), used to
// recognize the team's side in FootballDB game slugs.
func (c *Config) TeamCitySlug() string {
	return slugify(c.TeamCity)
}

func slugify(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
