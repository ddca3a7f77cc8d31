// Package config reads the runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/currency"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	// HTTP server
	Port      string
	APIURL    *url.URL
	GinMode   string
	LogFormat string

	// SQLite is used unless DBHost is set
	DBPath     string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string

	CORSAllowOrigins []string
	EnablePprof      bool

	Currency         currency.Unit
	SandboxUndoLimit int

	problems []string
}

// Load reads the configuration from the environment. Variables from a .env
// file in the working directory are loaded first, the environment wins.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env file")
	}

	c := &Config{
		Port:             getEnv("PORT", "8080"),
		GinMode:          getEnv("GIN_MODE", "release"),
		LogFormat:        os.Getenv("LOG_FORMAT"),
		DBPath:           getEnv("DB_PATH", "data/gorm.db"),
		DBHost:           os.Getenv("DB_HOST"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		CORSAllowOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof:      os.Getenv("ENABLE_PPROF") == "true",
	}

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok || apiURL == "" {
		c.problems = append(c.problems, "API_URL must be set")
	} else if u, err := url.Parse(apiURL); err != nil {
		c.problems = append(c.problems, fmt.Sprintf("invalid API_URL '%s': %v", apiURL, err))
	} else {
		c.APIURL = u
	}

	code := getEnv("CURRENCY", "EUR")
	unit, err := currency.ParseISO(code)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("invalid CURRENCY '%s': must be an ISO 4217 code", code))
	}
	c.Currency = unit

	limit := getEnv("SANDBOX_UNDO_LIMIT", "100")
	c.SandboxUndoLimit, err = strconv.Atoi(limit)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("invalid SANDBOX_UNDO_LIMIT '%s': must be a number", limit))
	}

	return c
}

// Validate returns an error listing every problem with the configuration.
func (c *Config) Validate() error {
	problems := append([]string{}, c.problems...)

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		problems = append(problems, fmt.Sprintf("invalid GIN_MODE '%s': must be one of debug, release, test", c.GinMode))
	}

	switch c.LogFormat {
	case "", "human", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid LOG_FORMAT '%s': must be human or json", c.LogFormat))
	}

	if c.Postgres() {
		if c.DBUser == "" || c.DBName == "" {
			problems = append(problems, "DB_USER and DB_NAME must be set when DB_HOST is set")
		}
	} else if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}

	if c.SandboxUndoLimit < 1 {
		problems = append(problems, fmt.Sprintf("invalid SANDBOX_UNDO_LIMIT %d: must be at least 1", c.SandboxUndoLimit))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	return nil
}

// Postgres reports if PostgreSQL is used instead of SQLite.
func (c *Config) Postgres() bool {
	return c.DBHost != ""
}

// PostgresDSN returns the connection string for PostgreSQL.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable", c.DBHost, c.DBUser, c.DBPassword, c.DBName)
}

// HumanLogs reports if logs are written for humans. Without LOG_FORMAT,
// this is the case in debug mode.
func (c *Config) HumanLogs() bool {
	if c.LogFormat == "" {
		return c.GinMode == "debug"
	}
	return c.LogFormat == "human"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
