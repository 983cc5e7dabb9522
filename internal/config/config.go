package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/bleathingman/iron-system/internal/engine"
	"github.com/bleathingman/iron-system/internal/storage"
)

// Config holds the Iron System settings.
type Config struct {
	Database DatabaseConfig `yaml:"database"`

	// IANA zone used to decide the calendar day; empty means local time.
	Timezone string `yaml:"timezone" env:"IRON_TIMEZONE"`

	Scheduler   SchedulerConfig   `yaml:"scheduler"`
	Progression ProgressionConfig `yaml:"progression"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" env:"IRON_DB_PATH"`
}

// SchedulerConfig configures the daily pool and bonus.
type SchedulerConfig struct {
	PoolSize     int `yaml:"pool_size" env:"IRON_POOL_SIZE"`
	DailyBonusXP int `yaml:"daily_bonus_xp" env:"IRON_DAILY_BONUS_XP"`
}

// ProgressionConfig configures XP accounting.
type ProgressionConfig struct {
	// 0 disables the cap.
	DailyXPCap int `yaml:"daily_xp_cap" env:"IRON_DAILY_XP_CAP"`
	DailyGoal  int `yaml:"daily_goal" env:"IRON_DAILY_GOAL"`
}

type LoggingConfig struct {
	Level       string `yaml:"level" env:"IRON_LOG_LEVEL"`
	Development bool   `yaml:"development"`
}

// DefaultDBPath is expanded by storage.ResolveDBPath.
const DefaultDBPath = "~/.iron/iron.db"

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	p := engine.DefaultPolicy()
	return &Config{
		Database: DatabaseConfig{Path: DefaultDBPath},
		Scheduler: SchedulerConfig{
			PoolSize:     p.DailyPoolSize,
			DailyBonusXP: p.DailyBonusXP,
		},
		Progression: ProgressionConfig{
			DailyXPCap: p.DailyXPCap,
			DailyGoal:  p.DailyGoal,
		},
		Logging: LoggingConfig{Level: "warn"},
	}
}

// DefaultPath is ~/.iron/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".iron", "config.yaml")
	}
	return filepath.Join(home, ".iron", "config.yaml")
}

// Load reads defaults, then the YAML file at path (a missing file is not
// an error), then environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv applies IRON_* environment variables onto target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Scheduler.PoolSize <= 0 {
		return fmt.Errorf("scheduler.pool_size must be > 0, got %d", c.Scheduler.PoolSize)
	}
	if c.Scheduler.DailyBonusXP < 0 {
		return fmt.Errorf("scheduler.daily_bonus_xp must be >= 0, got %d", c.Scheduler.DailyBonusXP)
	}
	if c.Progression.DailyXPCap < 0 {
		return fmt.Errorf("progression.daily_xp_cap must be >= 0, got %d", c.Progression.DailyXPCap)
	}
	if c.Progression.DailyGoal <= 0 {
		return fmt.Errorf("progression.daily_goal must be > 0, got %d", c.Progression.DailyGoal)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

// Location resolves Timezone; empty means time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// DBPath returns the database path with "~/" expanded.
func (c *Config) DBPath() (string, error) {
	return storage.ResolveDBPath(c.Database.Path)
}

// Policy maps the scheduler and progression settings onto engine.Policy.
func (c *Config) Policy() engine.Policy {
	return engine.Policy{
		DailyPoolSize: c.Scheduler.PoolSize,
		DailyBonusXP:  c.Scheduler.DailyBonusXP,
		DailyXPCap:    c.Progression.DailyXPCap,
		DailyGoal:     c.Progression.DailyGoal,
	}
}
