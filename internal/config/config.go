package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/2beens/barbellviz/internal/gymstats/barbell/plates"
)

type Config struct {
	Environment string `toml:"-"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// barbell
	AllowedOrigins                []string              `toml:"allowed_origins"`
	BarbellRateLimitAllowedPerMin int                   `toml:"barbell_rate_limit_allowed_per_min"`
	PageCacheSizeMegabytes        int                   `toml:"page_cache_size_mb"`
	PageCacheTTLSeconds           int                   `toml:"page_cache_ttl_seconds"`
	LatestExercisesLimit          int                   `toml:"latest_exercises_limit"`
	DefaultBarWeight              float64               `toml:"default_bar_weight"`
	Bars                          []plates.BarSpec      `toml:"bars"`
	Denominations                 []plates.Denomination `toml:"denominations"`
}

type Toml struct {
	Development *Config
	Production  *Config
	DockerDev   *Config `toml:"dockerdev"`
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	case "ddev", "dockerdev":
		cfg = t.DockerDev
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}

	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}

	cfg.Environment = strings.ToLower(env)
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Bars) == 0 {
		c.Bars = plates.DefaultBars
	}
	if len(c.Denominations) == 0 {
		c.Denominations = plates.DefaultDenominations
	}
	if c.DefaultBarWeight == 0 {
		c.DefaultBarWeight = c.Bars[0].Weight
	}
	if c.PageCacheSizeMegabytes <= 0 {
		c.PageCacheSizeMegabytes = 10
	}
	if c.PageCacheTTLSeconds <= 0 {
		c.PageCacheTTLSeconds = 3600
	}
	if c.LatestExercisesLimit <= 0 {
		c.LatestExercisesLimit = 10
	}
	if c.BarbellRateLimitAllowedPerMin <= 0 {
		c.BarbellRateLimitAllowedPerMin = 120
	}
}

// DefaultBar returns the bar option checked when a request does not pick one.
func (c *Config) DefaultBar() plates.BarSpec {
	if bar, ok := plates.FindBar(c.Bars, c.DefaultBarWeight); ok {
		return bar
	}
	return c.Bars[0]
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode toml config [%s]: %w", path, err)
	}
	return t.Get(env)
}

func Parse(env, data string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, fmt.Errorf("decode toml config: %w", err)
	}
	return t.Get(env)
}
