package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(NewFlagSet("test"), nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Dataset.Timeout)
	assert.Equal(t, time.Hour, cfg.Dataset.CacheTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Serve)
}

func TestLoadFlags(t *testing.T) {
	cfg, err := Load(NewFlagSet("test"), []string{
		"-b", "1994-12-10", "-g", "male", "--nation", "Japan", "--cache-ttl", "0s",
	})
	require.NoError(t, err)

	assert.Equal(t, "1994-12-10", cfg.Birthday)
	assert.Equal(t, "male", cfg.Gender)
	assert.Equal(t, "Japan", cfg.Nation)
	assert.Equal(t, time.Duration(0), cfg.Dataset.CacheTTL)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("LIFEPROGRESS_DATASET_URL", "http://example.test/lifespan.json")
	t.Setenv("LIFEPROGRESS_PORT", "9090")

	cfg, err := Load(NewFlagSet("test"), nil)
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/lifespan.json", cfg.Dataset.URL)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadFlagBeatsEnv(t *testing.T) {
	t.Setenv("LIFEPROGRESS_PORT", "9090")

	cfg, err := Load(NewFlagSet("test"), []string{"--port", "7070"})
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
}

func TestValidate(t *testing.T) {
	for name, args := range map[string][]string{
		"port":      {"--port", "0"},
		"timeout":   {"--dataset-timeout", "0s"},
		"ttl":       {"--cache-ttl", "-1m"},
		"exclusive": {"--dataset-url", "http://x", "--dataset-file", "x.json"},
	} {
		_, err := Load(NewFlagSet("test"), args)
		assert.ErrorIs(t, err, ErrInvalid, name)
	}
}
