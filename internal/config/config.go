// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token   string `yaml:"token"`
	Mode    string `yaml:"mode"`    // polling | noop
	Workers int    `yaml:"workers"` // polling workers
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AdminConfig struct {
	Port int `yaml:"port"` // 0 disables the ops server
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // postgres | sqlite
	URL    string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// Enabled reports whether a redis address was configured.
func (c RedisConfig) Enabled() bool { return strings.TrimSpace(c.URL) != "" }

type ScheduleConfig struct {
	URL      string        `yaml:"url"`
	Group    string        `yaml:"group"`
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"` // 0 means no timeout
}

type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Log      LogConfig      `yaml:"log"`
	Admin    AdminConfig    `yaml:"admin"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Schedule ScheduleConfig `yaml:"schedule"`

	Runtime RuntimeConfig `yaml:"-"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLitePath = "subscribers.db"
	defaultInterval   = 600 * time.Second
)

// LoadConfig reads the YAML file at path, applies defaults and validates.
// BOT_TOKEN in the environment overrides bot.token.
func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return parse(b, dev)
}

func parse(b []byte, dev bool) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if tok := strings.TrimSpace(os.Getenv("BOT_TOKEN")); tok != "" {
		cfg.Bot.Token = tok
	}

	// defaults
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Bot.Mode == "" {
		cfg.Bot.Mode = "polling"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Admin.Port < 0 {
		cfg.Admin.Port = 0
	}
	cfg.Database.Driver = normalizeDriver(cfg.Database.Driver, cfg.Database.URL)
	if cfg.Database.URL == "" && cfg.Database.Driver == DriverSQLite {
		cfg.Database.URL = defaultSQLitePath
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)
	if cfg.Schedule.Group == "" {
		cfg.Schedule.Group = "27"
	}
	if cfg.Schedule.Interval <= 0 {
		cfg.Schedule.Interval = defaultInterval
	}
	if cfg.Schedule.Timeout < 0 {
		cfg.Schedule.Timeout = 0
	}

	// Minimal validation
	if cfg.Bot.Token == "" {
		return nil, errors.New("bot.token is required")
	}
	if cfg.Schedule.URL == "" {
		return nil, errors.New("schedule.url is required")
	}
	switch cfg.Database.Driver {
	case DriverPostgres:
		if cfg.Database.URL == "" {
			return nil, errors.New("database.url is required for postgres")
		}
	case DriverSQLite:
	default:
		return nil, fmt.Errorf("database.driver %q is not supported", cfg.Database.Driver)
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

// normalizeDriver infers the driver from the URL scheme when it was left empty.
func normalizeDriver(driver, url string) string {
	d := strings.ToLower(strings.TrimSpace(driver))
	if d != "" {
		if d == "postgresql" || d == "pgx" {
			return DriverPostgres
		}
		return d
	}
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Hour
	}
	return d
}
