package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ADDR", "JWT_TTL", "STORE_BACKEND", "DATA_DIR", "CORS_ALLOWED_ORIGINS", "PGHOST"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, ":3001", cfg.Server.Addr)
	assert.Equal(t, "720h", cfg.Auth.JWTTTL)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, "./data", cfg.Store.DataDir)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Empty(t, cfg.Server.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}
