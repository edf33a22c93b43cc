// Package config loads timerd settings from configs/config.yml and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TIMERD_HTTP_PORT.
const EnvPrefix = "TIMERD"

type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http"`
	DB      DBConfig      `mapstructure:"db"`
	Log     LogConfig     `mapstructure:"log"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Timer   TimerConfig   `mapstructure:"timer"`
	Presets PresetsConfig `mapstructure:"presets"`
}

type HTTPConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// TimerConfig seeds the engine hosted by the daemon.
type TimerConfig struct {
	StartAt        time.Duration `mapstructure:"start_at"`
	CountDown      bool          `mapstructure:"count_down"`
	UpdateInterval time.Duration `mapstructure:"update_interval"`
}

type PresetsConfig struct {
	// Path of the presets YAML file; empty disables presets.
	Path string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("db.path", "timerd.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("auth.signing_key", "change-me")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("timer.start_at", 0)
	v.SetDefault("timer.count_down", false)
	v.SetDefault("timer.update_interval", 10*time.Millisecond)
	v.SetDefault("presets.path", "")
}

// Load reads config.yml from the first of paths that has one. A missing file
// is not an error; defaults and environment overrides still apply.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Timer.UpdateInterval <= 0 {
		return nil, fmt.Errorf("timer.update_interval must be positive, got %s", cfg.Timer.UpdateInterval)
	}
	return &cfg, nil
}
