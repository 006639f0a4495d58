/*
config.go - Environment-based configuration

PURPOSE:
  Loads server configuration from environment variables, with a .env
  file picked up from the working directory when present. Flags in
  cmd/server/main.go can override individual values.

VARIABLES:
  APP_ENV               dev | production         (default dev)
  PORT                  HTTP port                (default 8080)
  DB_PATH               SQLite file path         (default inventory.db)
  CORS_ALLOWED_ORIGINS  Comma-separated origins  (default localhost dev ports)
  LOG_LEVEL             zap level name           (default info)

SEE ALSO:
  - cmd/server/main.go: Flag overrides and wiring
*/
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	AppEnv         string
	Port           int
	DBPath         string
	AllowedOrigins []string
	LogLevel       string
}

// Load reads .env (if present) and the environment. A missing .env
// file is not an error; the environment alone is enough.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv: getEnv("APP_ENV", "dev"),
		Port:   getEnvInt("PORT", 8080),
		DBPath: getEnv("DB_PATH", "inventory.db"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS",
			[]string{"http://localhost:5173", "http://localhost:8080"}),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Production reports whether the server runs with production logging.
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return fallback
}
