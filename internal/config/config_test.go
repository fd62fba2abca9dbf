package config_test

import (
	"testing"
	"time"

	"github.com/Kyz7/storefront/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("ROLE_CACHE_TTL", "30s")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 30*time.Second, cfg.RoleCacheTTL)
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.False(t, cfg.IsProduction())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadInsecureJWT(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_ALLOW_INSECURE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.JWTAllowInsecure)

	t.Setenv("APP_ENV", "production")
	_, err = config.Load()
	assert.Error(t, err)
}
