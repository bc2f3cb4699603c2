package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")

		cfg, err := Load()
		require.NoError(t, err)

		assert.False(t, cfg.IsProduction)
		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, 15*time.Minute, cfg.JWTAccessTokenTTL)
		assert.Equal(t, "memory", cfg.Store.Backend)
		assert.Equal(t, 12, cfg.PageSize)
		assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
		assert.Empty(t, cfg.CatalogPath)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("APP_ENV", "prod")
		t.Setenv("PROD_ORIGINS", "https://a.example, https://b.example")
		t.Setenv("STORE_BACKEND", "Postgres")
		t.Setenv("DB_DSN", "postgres://localhost/dev")
		t.Setenv("PAGE_SIZE", "24")
		t.Setenv("SESSION_TTL", "5m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.True(t, cfg.IsProduction)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.ProdOrigins)
		assert.Equal(t, "postgres", cfg.Store.Backend)
		assert.Equal(t, 24, cfg.PageSize)
		assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	})

	t.Run("Missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("Postgres needs a DSN", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("STORE_BACKEND", "postgres")
		t.Setenv("DB_DSN", "")
		_, err := Load()
		assert.ErrorContains(t, err, "DB_DSN")
	})

	t.Run("Bad values", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")

		t.Setenv("PAGE_SIZE", "many")
		_, err := Load()
		assert.Error(t, err)

		t.Setenv("PAGE_SIZE", "0")
		_, err = Load()
		assert.Error(t, err)

		t.Setenv("PAGE_SIZE", "")
		t.Setenv("STORE_BACKEND", "cassandra")
		_, err = Load()
		assert.ErrorContains(t, err, "STORE_BACKEND")
	})
}
