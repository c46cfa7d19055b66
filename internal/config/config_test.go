package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/laudator")
	t.Setenv("PORT", "")
	t.Setenv("BLOB_DIR", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg := FromEnv()

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultBlobDir, cfg.BlobDir)
	assert.Empty(t, cfg.APIKey)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/laudator")
	t.Setenv("PORT", "9090")
	t.Setenv("BLOB_DIR", "/var/lib/laudator/blobs")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := FromEnv()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/var/lib/laudator/blobs", cfg.BlobDir)
	assert.Equal(t, "test-key", cfg.APIKey)
}

func TestFromEnv_BadPortFallsBackToDefault(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/laudator")
	t.Setenv("PORT", "not-a-port")

	cfg := FromEnv()

	assert.Equal(t, DefaultPort, cfg.Port)
}

func TestValidate_RequiresDatabaseURL(t *testing.T) {
	cfg := Config{Port: 8080, BlobDir: "blobs"}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestValidate_PortRange(t *testing.T) {
	cfg := Config{Port: 70000, DatabaseURL: "postgres://x", BlobDir: "blobs"}

	assert.Error(t, cfg.Validate())
}
