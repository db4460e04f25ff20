// Package config loads server configuration from an optional file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrMissingJWTKey = errors.New("jwt signing key is not configured (jwt.key / JWT_KEY)")

type Config struct {
	Server    ServerConfig
	JWT       JWTConfig
	Database  DatabaseConfig
	Log       LogConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
}

type ServerConfig struct {
	Addr       string
	Production bool
}

// JWTConfig is kept as raw strings; the token service applies defaults
// and reports unusable expiry values itself.
type JWTConfig struct {
	Key            string
	Issuer         string
	Audience       string
	ExpiresMinutes string
}

type DatabaseConfig struct {
	Driver string
	URL    string
}

type LogConfig struct {
	Level  string
	Format string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	// Auth is a ulule rate ("10-M") applied per IP to register and login.
	Auth string
}

type MetricsConfig struct {
	Enabled bool
}

// keys maps nested config keys to the env variables that may set them,
// in priority order.
var keys = map[string][]string{
	"server.addr":          {"ADDR"},
	"server.port":          {"PORT"},
	"server.env":           {"APP_ENV"},
	"jwt.key":              {"JWT_KEY"},
	"jwt.issuer":           {"JWT_ISSUER"},
	"jwt.audience":         {"JWT_AUDIENCE"},
	"jwt.expires_minutes":  {"JWT_EXPIRES_MINUTES"},
	"database.driver":      {"DB_DRIVER"},
	"database.url":         {"DATABASE_URL"},
	"log.level":            {"LOG_LEVEL"},
	"log.format":           {"LOG_FORMAT"},
	"cors.allowed_origins": {"CORS_ALLOWED_ORIGINS"},
	"rate_limit.auth":      {"RATE_LIMIT_AUTH"},
	"metrics.enabled":      {"METRICS_ENABLED"},
}

// Load reads configFile (yaml, json or toml; empty to skip) and overlays the
// environment. Environment variables win over the file.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.url", "futbol.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("cors.allowed_origins", "http://localhost:3000")
	v.SetDefault("rate_limit.auth", "20-M")
	v.SetDefault("metrics.enabled", true)

	for key, envs := range keys {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	addr := v.GetString("server.addr")
	if addr == "" {
		addr = ":" + v.GetString("server.port")
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:       addr,
			Production: strings.EqualFold(v.GetString("server.env"), "production"),
		},
		JWT: JWTConfig{
			Key:            v.GetString("jwt.key"),
			Issuer:         v.GetString("jwt.issuer"),
			Audience:       v.GetString("jwt.audience"),
			ExpiresMinutes: v.GetString("jwt.expires_minutes"),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("database.driver")),
			URL:    v.GetString("database.url"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.Get("cors.allowed_origins")),
		},
		RateLimit: RateLimitConfig{Auth: v.GetString("rate_limit.auth")},
		Metrics:   MetricsConfig{Enabled: v.GetBool("metrics.enabled")},
	}

	return cfg, nil
}

// Validate reports configuration the server cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Key) == "" {
		return ErrMissingJWTKey
	}
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return fmt.Errorf("database url is required for %s", c.Database.Driver)
	}
	return nil
}

// SlogLevel parses the configured level, defaulting to info.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// splitList accepts a comma separated string (env) or a list (file).
func splitList(raw any) []string {
	var parts []string
	switch v := raw.(type) {
	case string:
		parts = strings.Split(v, ",")
	case []string:
		parts = v
	case []any:
		for _, item := range v {
			parts = append(parts, fmt.Sprint(item))
		}
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
