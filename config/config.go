package config

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
	Store  StoreConfig  `yaml:"store"`
	Search SearchConfig `yaml:"search"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds the HTTP API configuration.
type ServerConfig struct {
	Enabled            bool     `yaml:"enabled"`
	Port               int      `yaml:"port"`
	RequestIPHeader    string   `yaml:"request_ip_header"`
	RateLimitPerSec    float64  `yaml:"rate_limit_per_sec"`
	RateLimitBurst     int      `yaml:"rate_limit_burst"`
	CacheTTLSeconds    int      `yaml:"cache_ttl_seconds"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	ShutdownTimeout    int      `yaml:"shutdown_timeout_seconds"`
}

// CacheTTL returns the response cache lifetime.
func (s ServerConfig) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSeconds) * time.Second
}

// DataConfig locates the hotel and booking sources.
type DataConfig struct {
	Hotels                 string        `yaml:"hotels"`
	Bookings               string        `yaml:"bookings"`
	RefreshIntervalSeconds int           `yaml:"refresh_interval_seconds"`
	RefreshInterval        time.Duration `yaml:"-"` // Ignored by YAML parser
	HTTPProxy              string        `yaml:"http_proxy"`
	S3                     S3Config      `yaml:"s3"`
}

// S3Config holds the object storage credentials for s3:// sources.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
	Region    string `yaml:"region"`
}

// StoreConfig selects and tunes the backing store.
type StoreConfig struct {
	Driver                   string `yaml:"driver"`
	DSN                      string `yaml:"dsn"`
	MaxOpenConns             int    `yaml:"max_open_conns"`
	MaxIdleConns             int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes   int    `yaml:"conn_max_lifetime_minutes"`
	MongoDatabase            string `yaml:"mongo_database"`
	InventoryCacheTTLSeconds int    `yaml:"inventory_cache_ttl_seconds"`
}

// InventoryCacheTTL returns how long hotel inventories stay cached.
func (s StoreConfig) InventoryCacheTTL() time.Duration {
	return time.Duration(s.InventoryCacheTTLSeconds) * time.Second
}

// SearchConfig tunes the free-interval search.
type SearchConfig struct {
	Subtraction string `yaml:"subtraction"`
}

// LogConfig selects the log output.
type LogConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
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
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not exist and
// the path was not set explicitly.
func LoadOrDefault(path string, explicit bool) (*Config, error) {
	cfg, err := Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 5
	}

	if cfg.Data.RefreshIntervalSeconds <= 0 {
		cfg.Data.RefreshIntervalSeconds = 300
	}
	cfg.Data.RefreshInterval = time.Duration(cfg.Data.RefreshIntervalSeconds) * time.Second

	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "memory"
	}
	if cfg.Store.MongoDatabase == "" {
		cfg.Store.MongoDatabase = "hotels"
	}
	if cfg.Store.InventoryCacheTTLSeconds <= 0 {
		cfg.Store.InventoryCacheTTLSeconds = 60
	}

	if cfg.Search.Subtraction == "" {
		slog.Debug("search.subtraction is not set; defaulting to faithful")
		cfg.Search.Subtraction = "faithful"
	}

	if cfg.Log.Env == "" {
		cfg.Log.Env = "dev"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
