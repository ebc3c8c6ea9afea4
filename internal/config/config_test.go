package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_DSN", "host=localhost dbname=gear4music")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("LOGIN_RATE_PER_MINUTE", "")
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD", "")

	cfg := Load()
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 20, cfg.LoginRatePerMinute)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, defaultAdminPassword, cfg.AdminPassword)
	assert.True(t, cfg.AdminPasswordIsDefault)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "gear4music.db")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOGIN_RATE_PER_MINUTE", "5")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_PASSWORD", "S3cret-pass")

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "gear4music.db", cfg.DBDSN)
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 5, cfg.LoginRatePerMinute)
	assert.Equal(t, "root", cfg.AdminUsername)
	assert.Equal(t, "S3cret-pass", cfg.AdminPassword)
	assert.False(t, cfg.AdminPasswordIsDefault)
}
