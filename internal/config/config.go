// Package config loads the backend configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// APIURL is the URL the API is reachable at, including the path prefix.
	// Environment variable: API_URL
	APIURL string `koanf:"API_URL"`

	// Port to listen on.
	// Environment variable: PORT
	Port int `koanf:"PORT"`

	// GinMode is passed to gin.SetMode. Defaults to release.
	// Environment variable: GIN_MODE
	GinMode string `koanf:"GIN_MODE"`

	// LogFormat is either "json" or "human".
	// Environment variable: LOG_FORMAT
	LogFormat string `koanf:"LOG_FORMAT"`

	// LogLevel is a zerolog level. When empty, it is derived from GinMode.
	// Environment variable: LOG_LEVEL
	LogLevel string `koanf:"LOG_LEVEL"`

	// CORSAllowOrigins is a space separated list of allowed origins.
	// Environment variable: CORS_ALLOW_ORIGINS
	CORSAllowOrigins string `koanf:"CORS_ALLOW_ORIGINS"`

	// EnablePprof registers the pprof handlers under /debug/pprof.
	// Environment variable: ENABLE_PPROF
	EnablePprof bool `koanf:"ENABLE_PPROF"`

	// AuthHeader is the request header carrying the verified user ID.
	// Environment variable: AUTH_HEADER
	AuthHeader string `koanf:"AUTH_HEADER"`

	// ShutdownTimeout is the time given to in-flight requests on shutdown.
	// Environment variable: SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `koanf:"SHUTDOWN_TIMEOUT"`

	Database `koanf:",squash"`
}

// Database holds the connection parameters for the store.
//
// If Host is set, postgres is used. Otherwise, a sqlite database
// is opened at Path.
type Database struct {
	Host     string `koanf:"DB_HOST"`
	Port     int    `koanf:"DB_PORT"`
	User     string `koanf:"DB_USER"`
	Password string `koanf:"DB_PASSWORD"`
	Name     string `koanf:"DB_NAME"`
	SSLMode  string `koanf:"DB_SSLMODE"`
	Path     string `koanf:"DB_PATH"`
}

// Postgres reports if the postgres driver is configured.
func (d Database) Postgres() bool {
	return d.Host != ""
}

// DSN returns the postgres connection URL. User, password and database
// name are escaped and may contain any character.
func (d Database) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}

	return u.String()
}

// Default returns the configuration used when no environment variables are set.
func Default() Config {
	return Config{
		APIURL:          "http://localhost:8080",
		Port:            8080,
		GinMode:         "release",
		LogFormat:       "json",
		AuthHeader:      "X-User-ID",
		ShutdownTimeout: 10 * time.Second,
		Database: Database{
			Port:    5432,
			User:    "postgres",
			Name:    "expenses",
			SSLMode: "disable",
			Path:    "data/expenses.db",
		},
	}
}

// Load reads an optional .env file from the working directory and then the
// process environment. Values from the environment take precedence.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("failed to read .env file: %w", err)
		}
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The human log format is the default when running in debug mode
	if _, ok := os.LookupEnv("LOG_FORMAT"); !ok && cfg.GinMode == "debug" {
		cfg.LogFormat = "human"
	}

	return cfg, cfg.Validate()
}

// Validate validates the configuration and returns an error listing every problem found.
func (c Config) Validate() error {
	var errs []string

	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("invalid API_URL '%s': must be an absolute URL", c.APIURL))
	}

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid PORT %d: must be between 1 and 65535", c.Port))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Sprintf("invalid GIN_MODE '%s': must be one of debug, release, test", c.GinMode))
	}

	switch c.LogFormat {
	case "json", "human":
	default:
		errs = append(errs, fmt.Sprintf("invalid LOG_FORMAT '%s': must be json or human", c.LogFormat))
	}

	if strings.TrimSpace(c.AuthHeader) == "" {
		errs = append(errs, "AUTH_HEADER must not be empty")
	}

	if c.ShutdownTimeout <= 0 {
		errs = append(errs, "SHUTDOWN_TIMEOUT must be positive")
	}

	if c.Database.Postgres() {
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			errs = append(errs, fmt.Sprintf("invalid DB_PORT %d: must be between 1 and 65535", c.Database.Port))
		}
		if c.Database.Name == "" {
			errs = append(errs, "DB_NAME must be set when DB_HOST is set")
		}
	} else if c.Database.Path == "" {
		errs = append(errs, "DB_PATH must be set when DB_HOST is not set")
	}

	if len(errs) > 0 {
		return errors.New("configuration is invalid: " + strings.Join(errs, "; "))
	}

	return nil
}

// URL returns the parsed API URL.
func (c Config) URL() *url.URL {
	u, _ := url.Parse(c.APIURL)
	return u
}
