package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/i474232898/business-hours/internal/business"
	"github.com/i474232898/business-hours/internal/common"
)

type AppConfig struct {
	Port string

	// FeedBaseURL is where schedule documents are fetched from. FeedDir, when
	// set, is a local fallback tried after the HTTP source.
	FeedBaseURL string
	FeedDir     string

	// Locations to track.
	Locations []business.Location

	// FetchInterval controls how often we refetch each schedule.
	FetchInterval time.Duration
	HTTPTimeout   time.Duration

	// In-memory store retention.
	StoreMaxHistory int           // max number of snapshots per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)

	// Timezone the business hours are expressed in.
	Timezone *time.Location

	LogLevel string
	AppEnv   string

	// Redis feed cache, disabled when RedisAddr is empty.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	FeedCacheTTL  time.Duration

	// Status change events, disabled when AMQPURL is empty.
	AMQPURL    string
	AMQPPrefix string
}

// Load reads configuration from environment with sensible defaults. A .env
// file in the working directory is loaded first if present; the returned bool
// reports whether one was found.
func Load() (*AppConfig, bool, error) {
	dotenv := godotenv.Load() == nil
	cfg := &AppConfig{}
	var err error

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.FeedBaseURL = getenvDefault("FEED_BASE_URL", "https://purs-demo-bucket-test.s3.us-west-2.amazonaws.com/")
	cfg.FeedDir = os.Getenv("FEED_DIR")

	if cfg.FetchInterval, err = getenvDuration("FETCH_INTERVAL", "15m"); err != nil {
		return nil, dotenv, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, dotenv, err
	}

	// roughly 24h at 15-minute intervals
	if cfg.StoreMaxHistory, err = getenvInt("STORE_MAX_HISTORY", 96); err != nil {
		return nil, dotenv, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, dotenv, err
	}

	tz := getenvDefault("BUSINESS_TIMEZONE", "UTC")
	if cfg.Timezone, err = time.LoadLocation(tz); err != nil {
		return nil, dotenv, fmt.Errorf("invalid BUSINESS_TIMEZONE: %w", err)
	}

	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.AppEnv = getenvDefault("APP_ENV", "production")

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if cfg.RedisDB, err = getenvInt("REDIS_DB", 0); err != nil {
		return nil, dotenv, err
	}
	if cfg.FeedCacheTTL, err = getenvDuration("FEED_CACHE_TTL", "168h"); err != nil {
		return nil, dotenv, err
	}

	cfg.AMQPURL = os.Getenv("AMQP_URL")
	cfg.AMQPPrefix = getenvDefault("AMQP_PREFIX", "businesshours")

	if cfg.Locations, err = loadLocations(getenvDefault("LOCATIONS", "default=location.json")); err != nil {
		return nil, dotenv, err
	}

	return cfg, dotenv, nil
}

func loadLocations(raw string) ([]business.Location, error) {
	pairs, err := common.ParsePairs(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid LOCATIONS: %w", err)
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("invalid LOCATIONS: no locations configured")
	}
	locs := make([]business.Location, 0, len(pairs))
	for _, p := range pairs {
		locs = append(locs, business.Location{Key: p.Key, Path: p.Value})
	}
	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
