package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Upstream station API.
	StationsBaseURL string
	StationsPath    string
	StationsTimeout time.Duration
	UpstreamRPS     float64
	UpstreamBurst   int
	WarmUpInterval  time.Duration

	// Optional marker publishing.
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaMarkerTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	stationsTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("STATIONS_API_TIMEOUT", "10s"))
	if err != nil || stationsTimeout <= 0 {
		return nil, errors.New("invalid STATIONS_API_TIMEOUT")
	}

	rps, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("UPSTREAM_RATE_LIMIT", "2"), 64)
	if err != nil || rps <= 0 {
		return nil, errors.New("invalid UPSTREAM_RATE_LIMIT: must be a positive number")
	}

	burst, err := strconv.Atoi(sharedcfg.EnvOrDefault("UPSTREAM_RATE_BURST", "5"))
	if err != nil || burst <= 0 {
		return nil, errors.New("invalid UPSTREAM_RATE_BURST: must be a positive integer")
	}

	warmUp, err := time.ParseDuration(sharedcfg.EnvOrDefault("WARMUP_INTERVAL", "15s"))
	if err != nil || warmUp <= 0 {
		return nil, errors.New("invalid WARMUP_INTERVAL")
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		StationsBaseURL: sharedcfg.EnvOrDefault("STATIONS_API_BASE_URL", "https://garmin-wind-api.vercel.app"),
		StationsPath:    sharedcfg.EnvOrDefault("STATIONS_API_PATH", "/api/all-stations"),
		StationsTimeout: stationsTimeout,
		UpstreamRPS:     rps,
		UpstreamBurst:   burst,
		WarmUpInterval:  warmUp,

		KafkaEnabled:     os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:     sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaMarkerTopic: sharedcfg.EnvOrDefault("KAFKA_MARKER_TOPIC", "wind-station-markers"),
	}

	if _, err := cfg.StationsURL(); err != nil {
		return nil, err
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaMarkerTopic == "" {
		return nil, errors.New("KAFKA_MARKER_TOPIC is required when KAFKA_ENABLED is true")
	}

	return cfg, nil
}

// StationsURL resolves STATIONS_API_PATH against STATIONS_API_BASE_URL. An
// absolute path value replaces the base entirely.
func (c *Config) StationsURL() (string, error) {
	return ResolveStationsURL(c.StationsBaseURL, c.StationsPath)
}

// ResolveStationsURL joins a base URL and a relative or absolute API path.
func ResolveStationsURL(base, path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid STATIONS_API_PATH: %w", err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}

	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return "", fmt.Errorf("invalid STATIONS_API_BASE_URL %q: must be an absolute URL", base)
	}
	return b.ResolveReference(ref).String(), nil
}
