package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/terraincognita07/lctracker/internal/models"
)

const (
	DefaultPort        = "8080"
	DefaultBaseURL     = "http://127.0.0.1:8090"
	DefaultRecentLimit = 20
	DefaultLanguage    = "en"
)

type Config struct {
	Port            string
	BaseURL         string
	StorePath       string
	Collection      string
	RecentLimit     int
	RequestTimeout  time.Duration
	DefaultLanguage string
	Location        *time.Location
	CookieSecure    bool
	TemplatesDir    string
	LocalesDir      string
	StaticDir       string
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) Config {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Printf(".env not loaded (%v), using process environment", err)
	}
	return FromEnv()
}

func FromEnv() Config {
	return Config{
		Port:            getEnv("PORT", DefaultPort),
		BaseURL:         strings.TrimRight(getEnv("PB_URL", DefaultBaseURL), "/"),
		StorePath:       strings.TrimSpace(os.Getenv("STORE_PATH")),
		Collection:      getEnv("COLLECTION", models.EntryCollection),
		RecentLimit:     getEnvInt("RECENT_LIMIT", DefaultRecentLimit),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 0),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", DefaultLanguage),
		Location:        loadLocation(getEnv("TZ", "UTC")),
		CookieSecure:    getEnvBool("COOKIE_SECURE", false),
		TemplatesDir:    getEnv("TEMPLATES_DIR", filepath.Join("internal", "templates")),
		LocalesDir:      getEnv("LOCALES_DIR", filepath.Join("internal", "i18n", "locales")),
		StaticDir:       getEnv("STATIC_DIR", filepath.Join("web", "static")),
	}
}

// UsesStore reports whether the in-process collection store is configured.
func (cfg Config) UsesStore() bool {
	return cfg.StorePath != ""
}

// Validate rejects settings the process cannot serve. The embedded store only
// hosts the lc_tracker collection, so COLLECTION may differ only when a remote
// service is used.
func (cfg Config) Validate() error {
	if cfg.UsesStore() && cfg.Collection != models.EntryCollection {
		return fmt.Errorf("COLLECTION %q is not served by the embedded store (only %q)", cfg.Collection, models.EntryCollection)
	}
	return nil
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		log.Printf("invalid %s %q, using %d", key, raw, fallback)
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value < 0 {
		log.Printf("invalid %s %q, using %s", key, raw, fallback)
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("invalid %s %q, using %t", key, raw, fallback)
		return fallback
	}
	return value
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
