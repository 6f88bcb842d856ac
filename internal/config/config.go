package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TOURGUIDE_REDIS_ADDR.
const EnvPrefix = "TOURGUIDE"

// Config holds the CLI configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// HTTPConfig holds the listener used by serve and mcp --sse.
type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

// RedisConfig enables the cross-process registry when Addr is set.
type RedisConfig struct {
	Addr   string        `mapstructure:"addr"`
	Prefix string        `mapstructure:"prefix"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// MetricsConfig toggles the /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Flag names bound onto config keys when present on the command.
var flagKeys = map[string]string{
	"log-level":    "log.level",
	"port":         "http.port",
	"redis":        "redis.addr",
	"redis-prefix": "redis.prefix",
	"redis-ttl":    "redis.ttl",
	"metrics":      "metrics.enabled",
}

// Load reads configuration from defaults, an optional file, the environment
// and flags, in increasing precedence. An empty path searches for
// tourguide.yaml in the working directory and in ~/.config/tourguide.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("http.port", 8080)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.prefix", "tourguide:")
	v.SetDefault("redis.ttl", time.Duration(0))
	v.SetDefault("metrics.enabled", true)

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tourguide")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "tourguide"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
