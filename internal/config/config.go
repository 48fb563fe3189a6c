package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Content
	ContentDir string
	SiteFile   string // Relative to ContentDir unless absolute
	BuildTime  string

	// Auth for /api routes; empty disables the check.
	APIKey string

	// Loading
	LoadWorkers int

	// Transform endpoint limits
	MaxTransformBytes int64

	// PDF
	PDFFallbackPdftotext bool
}

// Load reads configuration from the environment. Values from a .env file in
// the working directory fill in variables that are not already set.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		ContentDir: envOr("CONTENT_DIR", "content"),
		SiteFile:   envOr("SITE_FILE", "site.yaml"),
		BuildTime:  envOr("BUILD_TIME", time.Now().UTC().Format(time.RFC3339)),

		APIKey: os.Getenv("DOCPAGE_API_KEY"),

		LoadWorkers: envInt("LOAD_WORKERS", 4),

		MaxTransformBytes: envInt64("MAX_TRANSFORM_BYTES", 5242880), // 5MB

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.LoadWorkers <= 0 {
		cfg.LoadWorkers = 4
	}
	if cfg.MaxTransformBytes <= 0 {
		cfg.MaxTransformBytes = 5242880
	}

	return cfg
}

func (c Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("CONTENT_DIR is required")
	}
	info, err := os.Stat(c.ContentDir)
	if err != nil {
		return fmt.Errorf("CONTENT_DIR: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("CONTENT_DIR %q is not a directory", c.ContentDir)
	}
	if c.BuildTime == "" {
		return fmt.Errorf("BUILD_TIME must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
