// Package config defines and loads the CLI configuration. Values come
// from an optional YAML config file overridden by JOBWIRE_* environment
// variables; an example config.yaml is provided in the repository.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API      API      `mapstructure:"api"`
	Realtime Realtime `mapstructure:"realtime"`
	Session  Session  `mapstructure:"session"`
	Logger   Logger   `mapstructure:"logger"`
}

type API struct {
	BaseURL    string        `mapstructure:"baseURL"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Retries    int           `mapstructure:"retries"`
	RetryDelay time.Duration `mapstructure:"retryDelay"`
}

type Realtime struct {
	URL string `mapstructure:"url"`
}

type Session struct {
	// File is the persisted token slot used by default.
	File string `mapstructure:"file"`

	// Valkey, when a host is set, replaces the file slot with a shared
	// Valkey-backed one.
	Valkey Valkey `mapstructure:"valkey"`

	RefreshInterval time.Duration `mapstructure:"refreshInterval"`
}

type Valkey struct {
	Host     string        `mapstructure:"host"`
	Password string        `mapstructure:"password"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads the config file (explicit path, or $HOME/.jobwire and the
// working directory) and applies environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".jobwire"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("JOBWIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.baseURL", "http://localhost:8000/api/v1")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.retries", 1)
	v.SetDefault("api.retryDelay", "1s")
	v.SetDefault("realtime.url", "ws://localhost:8000/ws")
	v.SetDefault("session.file", defaultSessionFile())
	v.SetDefault("session.refreshInterval", "1m")
	v.SetDefault("session.valkey.prefix", "jobwire")
	v.SetDefault("session.valkey.ttl", "168h")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}

	return filepath.Join(home, ".jobwire", "session.json")
}

func (c *Config) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.baseURL is not a valid URL: %q", c.API.BaseURL)
	}
	if c.API.Retries < 0 {
		return errors.New("api.retries must not be negative")
	}
	if c.Session.File == "" && c.Session.Valkey.Host == "" {
		return errors.New("one of session.file or session.valkey.host must be set")
	}

	return nil
}
