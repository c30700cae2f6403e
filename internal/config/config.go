package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/crowdmap/crowd-heatmap/internal/database"
	"github.com/crowdmap/crowd-heatmap/internal/intensity"
)

// Config is the top-level application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Database  DatabaseConfig  `yaml:"database" mapstructure:"database"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Overpass  OverpassConfig  `yaml:"overpass" mapstructure:"overpass"`
	Nominatim NominatimConfig `yaml:"nominatim" mapstructure:"nominatim"`
	Intensity IntensityConfig `yaml:"intensity" mapstructure:"intensity"`
	RateLimit RateLimitConfig `yaml:"ratelimit" mapstructure:"ratelimit"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr             string `yaml:"addr" mapstructure:"addr"`
	ReadTimeoutSecs  int    `yaml:"read_timeout_secs" mapstructure:"read_timeout_secs"`
	WriteTimeoutSecs int    `yaml:"write_timeout_secs" mapstructure:"write_timeout_secs"`
}

// DatabaseConfig holds the sqlite location
type DatabaseConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// OverpassConfig configures the POI source
type OverpassConfig struct {
	URL         string  `yaml:"url" mapstructure:"url"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// NominatimConfig configures the geocoder
type NominatimConfig struct {
	URL         string  `yaml:"url" mapstructure:"url"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	Limit       int     `yaml:"limit" mapstructure:"limit"`
}

// IntensityConfig holds estimator parameters
type IntensityConfig struct {
	RadiusMeters    float64 `yaml:"radius_meters" mapstructure:"radius_meters"`
	Grid            int     `yaml:"grid" mapstructure:"grid"`
	HighThreshold   int     `yaml:"high_threshold" mapstructure:"high_threshold"`
	MediumThreshold int     `yaml:"medium_threshold" mapstructure:"medium_threshold"`
}

// RateLimitConfig bounds inbound requests per client IP
type RateLimitConfig struct {
	Requests   int `yaml:"requests" mapstructure:"requests"`
	WindowSecs int `yaml:"window_secs" mapstructure:"window_secs"`
}

// Load reads configuration from config.yaml (optional) and CROWDMAP_*
// environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CROWDMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout_secs", 15)
	v.SetDefault("server.write_timeout_secs", 60)
	v.SetDefault("database.path", "./data/crowdmap.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("overpass.url", "https://overpass-api.de/api/interpreter")
	v.SetDefault("overpass.timeout_secs", 30)
	v.SetDefault("overpass.rate_per_sec", 1)
	v.SetDefault("nominatim.url", "https://nominatim.openstreetmap.org/search")
	v.SetDefault("nominatim.user_agent", "CrowdHeatmapApp/1.0")
	v.SetDefault("nominatim.timeout_secs", 10)
	v.SetDefault("nominatim.rate_per_sec", 1)
	v.SetDefault("nominatim.limit", 5)
	v.SetDefault("intensity.radius_meters", intensity.DefaultRadiusMeters)
	v.SetDefault("intensity.grid", intensity.DefaultGrid)
	v.SetDefault("intensity.high_threshold", intensity.DefaultHighThreshold)
	v.SetDefault("intensity.medium_threshold", intensity.DefaultMediumThreshold)
	v.SetDefault("ratelimit.requests", 60)
	v.SetDefault("ratelimit.window_secs", 60)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the estimator or the clients cannot work with
func (c *Config) Validate() error {
	switch {
	case c.Intensity.RadiusMeters <= 0:
		return eris.Errorf("config: intensity.radius_meters must be positive, got %v", c.Intensity.RadiusMeters)
	case c.Intensity.Grid <= 0:
		return eris.Errorf("config: intensity.grid must be positive, got %d", c.Intensity.Grid)
	case c.Intensity.HighThreshold < 1:
		return eris.Errorf("config: intensity.high_threshold must be at least 1, got %d", c.Intensity.HighThreshold)
	case c.Intensity.MediumThreshold < 1:
		return eris.Errorf("config: intensity.medium_threshold must be at least 1, got %d", c.Intensity.MediumThreshold)
	case c.Intensity.MediumThreshold > c.Intensity.HighThreshold:
		return eris.Errorf("config: intensity.medium_threshold %d exceeds high_threshold %d",
			c.Intensity.MediumThreshold, c.Intensity.HighThreshold)
	case c.Overpass.URL == "":
		return eris.New("config: overpass.url is required")
	case c.Nominatim.URL == "":
		return eris.New("config: nominatim.url is required")
	case c.Database.Path == "":
		return eris.New("config: database.path is required")
	}
	return nil
}

// IntensityOptions converts the intensity section into estimator options
func (c *Config) IntensityOptions() intensity.Options {
	return intensity.Options{
		RadiusMeters: c.Intensity.RadiusMeters,
		Grid:         c.Intensity.Grid,
		Thresholds: intensity.Thresholds{
			High:   c.Intensity.HighThreshold,
			Medium: c.Intensity.MediumThreshold,
		},
	}
}

// DB returns the database package configuration
func (c *Config) DB() database.Config {
	return database.Config{Path: c.Database.Path}
}

// Window returns the rate limit window
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSecs) * time.Second
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
