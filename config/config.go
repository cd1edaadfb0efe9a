// Package config loads settings from an optional file, a .env file and
// INTENTAGENT_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/tbxark/intentagent/retry"
)

const EnvPrefix = "INTENTAGENT"

const (
	ExtractorTag      = "tag"
	ExtractorFunction = "function"
)

type Config struct {
	LogLevel  string       `mapstructure:"log_level"`
	Catalog   string       `mapstructure:"catalog"`
	Extractor string       `mapstructure:"extractor"`
	Model     ModelConfig  `mapstructure:"model"`
	Server    ServerConfig `mapstructure:"server"`
	Retry     RetryConfig  `mapstructure:"retry"`
	Router    RouterConfig `mapstructure:"router"`
}

type ModelConfig struct {
	APIKey      string `mapstructure:"api_key"`
	BaseURL     string `mapstructure:"base_url"`
	IntentModel string `mapstructure:"intent_model"`
	ChatModel   string `mapstructure:"chat_model"`
}

type ServerConfig struct {
	Addr   string   `mapstructure:"addr"`
	Tokens []string `mapstructure:"tokens"`
}

type RetryConfig struct {
	MaxRetries      uint64        `mapstructure:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
}

type RouterConfig struct {
	ReconfirmCallback bool `mapstructure:"reconfirm_callback"`
	MergeArguments    bool `mapstructure:"merge_arguments"`
}

func setDefaults(v *viper.Viper) {
	def := retry.Default()
	v.SetDefault("log_level", "info")
	v.SetDefault("catalog", "")
	v.SetDefault("extractor", ExtractorTag)
	v.SetDefault("model.api_key", "")
	v.SetDefault("model.base_url", "https://dashscope.aliyuncs.com/compatible-mode/v1")
	v.SetDefault("model.intent_model", "tongyi-intent-detect-v3")
	v.SetDefault("model.chat_model", "qwen-flash")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.tokens", []string{})
	v.SetDefault("retry.max_retries", def.MaxRetries)
	v.SetDefault("retry.initial_interval", def.InitialInterval)
	v.SetDefault("router.reconfirm_callback", false)
	v.SetDefault("router.merge_arguments", false)
}

// Load reads path when given, otherwise looks for intentagent.{yaml,json}
// in the working directory and ./configs.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("model.api_key", EnvPrefix+"_MODEL_API_KEY", "DASHSCOPE_API_KEY", "OPENAI_API_KEY")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("intentagent")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Extractor {
	case ExtractorTag, ExtractorFunction:
	default:
		return fmt.Errorf("unknown extractor %q, want %q or %q", c.Extractor, ExtractorTag, ExtractorFunction)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Retry.MaxRetries > retry.MaxRetries {
		return fmt.Errorf("retry.max_retries %d exceeds %d", c.Retry.MaxRetries, retry.MaxRetries)
	}
	return nil
}

func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *Config) RetryPolicy() retry.Policy {
	return retry.Policy{
		MaxRetries:      c.Retry.MaxRetries,
		InitialInterval: c.Retry.InitialInterval,
	}
}
