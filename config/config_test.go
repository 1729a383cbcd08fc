package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("DATABASE_URL", "postgresql://localhost:5432/shramsaathi_test")
	os.Unsetenv("PORT")
	os.Unsetenv("ALLOWED_ORIGINS")
	os.Unsetenv("GEOCODER_BASE_URL")
	os.Unsetenv("GEOCODE_CACHE_SIZE")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.GeocoderBaseURL)
	assert.Equal(t, 1024, cfg.GeocodeCacheSize)
	assert.True(t, cfg.IsTest())
	assert.False(t, cfg.IsProduction())
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadParsesOriginList(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("DATABASE_URL", "postgresql://localhost:5432/shramsaathi_test")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, https://shramsaathi.example ,")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000", "https://shramsaathi.example"}, cfg.AllowedOrigins)
}

func TestLoadInvalidCacheSizeFallsBack(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("DATABASE_URL", "postgresql://localhost:5432/shramsaathi_test")
	t.Setenv("GEOCODE_CACHE_SIZE", "not-a-number")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 1024, cfg.GeocodeCacheSize)
}

func TestSetAndGetConfig(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	cfg := &Config{GoEnv: "test"}
	SetConfig(cfg)
	assert.Same(t, cfg, GetConfig())
}
