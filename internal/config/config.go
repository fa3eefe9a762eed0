package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"kakeibo/internal/log"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Log struct {
		Level string
	}
	Session struct {
		TTL        time.Duration
		MaxEntries int
	}
}

// Load reads configuration from KAKEIBO_-prefixed environment variables and
// an optional config file in the working directory.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("KAKEIBO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("session.ttl", "720h") // 30 days
	v.SetDefault("session.maxentries", 1024)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.Log.Level))
	}

	if c.Session.TTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid session TTL %v: must be at least 1 minute", c.Session.TTL))
	} else if c.Session.TTL > 90*24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid session TTL %v: must be at most 90 days", c.Session.TTL))
	}

	if c.Session.MaxEntries < 1 {
		errors = append(errors, fmt.Sprintf("invalid session capacity %d: must be at least 1", c.Session.MaxEntries))
	} else if c.Session.MaxEntries > 1000000 {
		errors = append(errors, fmt.Sprintf("invalid session capacity %d: must be at most 1000000", c.Session.MaxEntries))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}
