package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresBackendURL(t *testing.T) {
	t.Setenv("YMGS_BACKEND_URL", "")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadNormalizesBackendURL(t *testing.T) {
	t.Setenv("YMGS_BACKEND_URL", "https://api.ymgs.example/api/")
	t.Setenv("YMGS_STATE_PATH", t.TempDir()+"/state.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.ymgs.example/api", cfg.Backend.BaseURL)
	assert.Equal(t, 20, cfg.Catalog.PageSize)
	assert.Equal(t, 10, cfg.Catalog.FeaturedLimit)
}

func TestLoadRejectsMalformedURL(t *testing.T) {
	t.Setenv("YMGS_BACKEND_URL", "not a url")
	_, err := Load()
	require.Error(t, err)
}
