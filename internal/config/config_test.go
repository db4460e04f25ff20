package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_KEY", "env-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.False(t, cfg.Server.Production)
	assert.Equal(t, "env-key", cfg.JWT.Key)
	assert.Empty(t, cfg.JWT.Issuer)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "futbol.db", cfg.Database.URL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "20-M", cfg.RateLimit.Auth)
	assert.True(t, cfg.Metrics.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("JWT_KEY", "k")
	t.Setenv("JWT_ISSUER", "Issuer.X")
	t.Setenv("JWT_AUDIENCE", "Aud.X")
	t.Setenv("JWT_EXPIRES_MINUTES", "90")
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("DATABASE_URL", "postgres://localhost/futbol")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.app, https://b.app ,")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.True(t, cfg.Server.Production)
	assert.Equal(t, JWTConfig{Key: "k", Issuer: "Issuer.X", Audience: "Aud.X", ExpiresMinutes: "90"}, cfg.JWT)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, []string{"https://a.app", "https://b.app"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "futbol.yaml")
	content := `
server:
  addr: "127.0.0.1:7000"
jwt:
  key: file-key
  issuer: File.Api
cors:
  allowed_origins:
    - https://one.app
    - https://two.app
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("JWT_ISSUER", "Env.Api")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
	assert.Equal(t, "file-key", cfg.JWT.Key)
	assert.Equal(t, "Env.Api", cfg.JWT.Issuer, "env overrides file")
	assert.Equal(t, []string{"https://one.app", "https://two.app"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Driver: DriverSQLite, URL: "x.db"}}
	assert.ErrorIs(t, cfg.Validate(), ErrMissingJWTKey)

	cfg.JWT.Key = "k"
	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg.Database.Driver = DriverPostgres
	cfg.Database.URL = ""
	assert.Error(t, cfg.Validate())
}

func TestSlogLevel_Fallback(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, LogConfig{Level: "loud"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, LogConfig{Level: "WARN"}.SlogLevel())
}
