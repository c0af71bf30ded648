package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_NAME", "MONGO_URI", "TOKEN_TTL", "BROWSER_FALLBACK"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017/", cfg.MongoURI)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.BrowserFallback)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("AWS_BUCKET_NAME", "looks")
	t.Setenv("BROWSER_FALLBACK", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.StorageEnabled())
	assert.False(t, cfg.BrowserFallback)
}

func TestValidate(t *testing.T) {
	cfg := &Config{MongoURI: "mongodb://db", DBName: "stylewise", JWTSecret: "x", TokenTTL: time.Hour}
	assert.NoError(t, cfg.Validate())

	cfg.JWTSecret = ""
	cfg.DBName = ""
	assert.EqualError(t, cfg.Validate(), "missing required config: JWT_SECRET, DB_NAME")

	cfg = &Config{MongoURI: "mongodb://db", DBName: "stylewise", JWTSecret: "x"}
	assert.ErrorContains(t, cfg.Validate(), "TOKEN_TTL")
}

func TestValidateMemoryStoreSkipsMongo(t *testing.T) {
	cfg := &Config{MemoryStore: true, JWTSecret: "x", TokenTTL: time.Hour}
	assert.NoError(t, cfg.Validate())
}
