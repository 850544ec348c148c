// Package config loads service settings from the environment and an optional .env file.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/crimemap/backend/internal/domain"
)

// Config holds the application configuration
type Config struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"go_env"`

	DataSource  string `mapstructure:"data_source"` // fixtures, postgres, sqlite, file, feed
	DatabaseURL string `mapstructure:"database_url"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	RecordsFile string `mapstructure:"records_file"`
	FeedURL     string `mapstructure:"feed_url"`

	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`

	HomeLat     float64 `mapstructure:"map_center_lat"`
	HomeLng     float64 `mapstructure:"map_center_lng"`
	DefaultZoom int     `mapstructure:"map_zoom"`

	SessionIdleTimeout time.Duration `mapstructure:"session_idle_timeout"`
	RefreshInterval    time.Duration `mapstructure:"refresh_interval"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

var defaults = map[string]any{
	"port":                 "8080",
	"go_env":               "development",
	"data_source":          "fixtures",
	"database_url":         "",
	"sqlite_path":          "./data/incidents.db",
	"records_file":         "",
	"feed_url":             "",
	"redis_addr":           "",
	"redis_password":       "",
	"redis_db":             0,
	"cache_ttl":            5 * time.Minute,
	"map_center_lat":       domain.NewYorkCenter.Lat,
	"map_center_lng":       domain.NewYorkCenter.Lng,
	"map_zoom":             domain.DefaultZoom,
	"session_idle_timeout": 30 * time.Minute,
	"refresh_interval":     time.Duration(0),
	"log_level":            "info",
	"log_format":           "console",
}

// Load reads .env (if present) and the process environment.
// Keys are the upper-cased mapstructure names, e.g. DATA_SOURCE.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		zap.L().Debug("no .env file found, using system environment")
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: failed to decode settings")
	}
	cfg.DataSource = strings.ToLower(strings.TrimSpace(cfg.DataSource))
	return &cfg, nil
}

// Home returns the configured map home position
func (c *Config) Home() domain.LatLng {
	return domain.LatLng{Lat: c.HomeLat, Lng: c.HomeLng}
}
