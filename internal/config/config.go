package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config defines application configuration.
type Config struct {
	DB    DBConfig    `yaml:"db"`
	Log   LogConfig   `yaml:"log"`
	Query QueryConfig `yaml:"query"`
	Seed  bool        `yaml:"seed"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// QueryConfig controls title collation, the zone that defines "today" and
// the result cache size.
type QueryConfig struct {
	Locale    string `yaml:"locale"`
	Timezone  string `yaml:"timezone"`
	CacheSize int    `yaml:"cache_size"`
}

// Language parses the configured locale.
func (q QueryConfig) Language() (language.Tag, error) {
	tag, err := language.Parse(q.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid query locale %q: %w", q.Locale, err)
	}
	return tag, nil
}

// Location resolves the configured time zone. Empty means the process zone.
func (q QueryConfig) Location() (*time.Location, error) {
	if q.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(q.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid query timezone %q: %w", q.Timezone, err)
	}
	return loc, nil
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		DB: DBConfig{
			Path: "faultdesk.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Query: QueryConfig{
			Locale:    "tr",
			CacheSize: 128,
		},
	}

	if path := os.Getenv("FAULTDESK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if dbPath := os.Getenv("FAULTDESK_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("FAULTDESK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("FAULTDESK_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if locale := os.Getenv("FAULTDESK_LOCALE"); locale != "" {
		cfg.Query.Locale = locale
	}
	if tz := os.Getenv("FAULTDESK_TIMEZONE"); tz != "" {
		cfg.Query.Timezone = tz
	}
	if sizeStr := os.Getenv("FAULTDESK_CACHE_SIZE"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FAULTDESK_CACHE_SIZE: %w", err)
		}
		cfg.Query.CacheSize = size
	}
	if seedStr := os.Getenv("FAULTDESK_SEED"); seedStr != "" {
		seed, err := strconv.ParseBool(seedStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FAULTDESK_SEED: %w", err)
		}
		cfg.Seed = seed
	}

	if _, err := cfg.Query.Language(); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Query.Location(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
