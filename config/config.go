package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Overpass   OverpassConfig   `yaml:"overpass"`
	Estimator  EstimatorConfig  `yaml:"estimator"`
	Sweep      SweepConfig      `yaml:"sweep"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// OverpassConfig defines the HTTP request for the road-data fetcher.
type OverpassConfig struct {
	URL            string            `yaml:"url"`
	Headers        map[string]string `yaml:"headers"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	Timeout        time.Duration     `yaml:"-"` // Ignored by YAML parser
	SearchRadiusM  int               `yaml:"search_radius_m"`
}

// EstimatorConfig holds the street availability cache tuning.
type EstimatorConfig struct {
	CacheRadiusM        float64       `yaml:"cache_radius_m"`
	CacheTTLSeconds     int           `yaml:"cache_ttl_seconds"`
	CacheTTL            time.Duration `yaml:"-"`
	PlaceholdersEnabled bool          `yaml:"placeholders_enabled"`
	PlaceholderSeed     int64         `yaml:"placeholder_seed"`
}

// SweepConfig holds the expiry sweep loop configuration.
type SweepConfig struct {
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Overpass.URL == "" {
		cfg.Overpass.URL = "https://overpass-api.de/api/interpreter"
	}
	if cfg.Overpass.TimeoutSeconds <= 0 {
		cfg.Overpass.TimeoutSeconds = 15
	}
	cfg.Overpass.Timeout = time.Duration(cfg.Overpass.TimeoutSeconds) * time.Second

	if cfg.Overpass.SearchRadiusM <= 0 {
		cfg.Overpass.SearchRadiusM = 500
	}

	if cfg.Estimator.CacheRadiusM <= 0 {
		cfg.Estimator.CacheRadiusM = 500
	}
	if cfg.Estimator.CacheTTLSeconds <= 0 {
		cfg.Estimator.CacheTTLSeconds = 300
	}
	cfg.Estimator.CacheTTL = time.Duration(cfg.Estimator.CacheTTLSeconds) * time.Second

	if cfg.Sweep.IntervalSeconds <= 0 {
		cfg.Sweep.IntervalSeconds = 10
	}
	cfg.Sweep.Interval = time.Duration(cfg.Sweep.IntervalSeconds) * time.Second

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}
