package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	t.Setenv("VITE_BACKEND_URL", "")
	t.Setenv("PREVIEW_STORE", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("SESSION_MAX", "")
	t.Setenv("PREVIEW_TTL", "")

	cfg := Load()

	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Backend.RequestTimeout)
	assert.Equal(t, PreviewStoreMemory, cfg.Preview.Store)
	assert.Equal(t, int64(10485760), cfg.Upload.MaxFileSize)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 1000, cfg.Session.Max)
}

func TestPreviewTTLFollowsSessionTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("PREVIEW_TTL", "")
	assert.Equal(t, 2*time.Hour, Load().Preview.TTL)

	t.Setenv("PREVIEW_TTL", "10m")
	assert.Equal(t, 10*time.Minute, Load().Preview.TTL)
}

func TestLoadBackendURL(t *testing.T) {
	t.Run("explicit setting wins", func(t *testing.T) {
		t.Setenv("BACKEND_URL", "https://ops.example.com/")
		t.Setenv("VITE_BACKEND_URL", "http://ignored:1")

		assert.Equal(t, "https://ops.example.com", Load().Backend.BaseURL)
	})

	t.Run("vite style setting is honoured", func(t *testing.T) {
		t.Setenv("BACKEND_URL", "")
		t.Setenv("VITE_BACKEND_URL", "http://10.0.0.5:8000")

		assert.Equal(t, "http://10.0.0.5:8000", Load().Backend.BaseURL)
	})
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("X_DURATION", "2m")
	assert.Equal(t, 2*time.Minute, getEnvAsDuration("X_DURATION", time.Second))

	t.Setenv("X_DURATION", "45")
	assert.Equal(t, 45*time.Second, getEnvAsDuration("X_DURATION", time.Second))

	t.Setenv("X_DURATION", "soon")
	assert.Equal(t, time.Second, getEnvAsDuration("X_DURATION", time.Second))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"GET", "POST"}, SplitList(" GET, ,POST "))
	assert.Nil(t, SplitList(""))
}
