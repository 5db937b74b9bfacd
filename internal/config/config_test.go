package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"PORT", "LOCATIONS", "FETCH_INTERVAL", "BUSINESS_TIMEZONE", "REDIS_ADDR", "AMQP_URL", "FEED_DIR"} {
		t.Setenv(k, "")
	}

	cfg, dotenv, err := Load()
	require.NoError(t, err)
	assert.False(t, dotenv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.FetchInterval)
	assert.Equal(t, time.UTC, cfg.Timezone)
	require.Len(t, cfg.Locations, 1)
	assert.Equal(t, "default", cfg.Locations[0].Key)
	assert.Equal(t, "location.json", cfg.Locations[0].Path)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "businesshours", cfg.AMQPPrefix)
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LOCATIONS", "beastro=location.json,annex=annex/hours.json")
	t.Setenv("FETCH_INTERVAL", "5m")
	t.Setenv("BUSINESS_TIMEZONE", "America/Los_Angeles")
	t.Setenv("STORE_MAX_HISTORY", "10")

	cfg, _, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.FetchInterval)
	assert.Equal(t, "America/Los_Angeles", cfg.Timezone.String())
	assert.Equal(t, 10, cfg.StoreMaxHistory)
	require.Len(t, cfg.Locations, 2)
	assert.Equal(t, "annex/hours.json", cfg.Locations[1].Path)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"FETCH_INTERVAL":    "soon",
		"BUSINESS_TIMEZONE": "Mars/Olympus",
		"LOCATIONS":         "location.json",
		"STORE_MAX_HISTORY": "lots",
		"REDIS_DB":          "x",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(key, value)
			_, _, err := Load()
			assert.Error(t, err)
		})
	}
}
