package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pettag/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 10*time.Second, cfg.DB.QueryTimeout)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Equal(t, config.DefaultAdmin(), cfg.Admin)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PETTAG_DB_HOST", "db.internal")
	t.Setenv("PETTAG_DB_QUERY_TIMEOUT", "3s")
	t.Setenv("PETTAG_LOG_FORMAT", "console")
	t.Setenv("PETTAG_ADMIN_SEARCH_LIMIT", "5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 3*time.Second, cfg.DB.QueryTimeout)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 5, cfg.Admin.SearchLimit)
}

func TestLoad_RejectsInvalidPageSizes(t *testing.T) {
	t.Setenv("PETTAG_ADMIN_DEFAULT_PAGE_SIZE", "500")

	cfg, err := config.Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestDBConfig_DSN(t *testing.T) {
	cfg := config.DBConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@localhost:5432/n?sslmode=disable", cfg.DSN())
}
