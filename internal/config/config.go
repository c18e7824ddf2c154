package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix           = "FEEDR"
	appName             = "feedr"
	defaultFetchTimeout = 15 * time.Second
)

// Config holds runtime settings for the reader.
type Config struct {
	DataDir      string
	Store        string
	FetchTimeout time.Duration
	LogLevel     string
	LogFile      string
	Theme        string
}

// Load reads settings from FEEDR_* environment variables and an optional
// YAML file. An explicitly named file must exist; the default one may not.
func Load(configFile string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("store", "json")
	v.SetDefault("fetch_timeout", defaultFetchTimeout)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("theme", "mocha")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := defaultConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		DataDir:      v.GetString("data_dir"),
		Store:        strings.ToLower(strings.TrimSpace(v.GetString("store"))),
		FetchTimeout: v.GetDuration("fetch_timeout"),
		LogLevel:     strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		LogFile:      v.GetString("log_file"),
		Theme:        strings.ToLower(strings.TrimSpace(v.GetString("theme"))),
	}
	if cfg.LogFile == "" && cfg.DataDir != "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, appName+".log")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data_dir is required")
	}
	if c.Store != "json" && c.Store != "sqlite" {
		return fmt.Errorf("store must be json or sqlite: %s", c.Store)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive: %s", c.FetchTimeout)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error: %s", c.LogLevel)
	}
	switch c.Theme {
	case "", "mocha", "dark", "latte", "light":
	default:
		return fmt.Errorf("theme must be mocha or latte: %s", c.Theme)
	}
	return nil
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return appName
	}
	return filepath.Join(home, ".local", "share", appName)
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName)
}
