// Package config loads application configuration from an optional
// config.yaml plus SANTOSCORE_-prefixed environment variables, and owns the
// global logger setup.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/santo-labs/santoscore/internal/mail"
)

// Config holds the full application configuration.
type Config struct {
	XAI    XAIConfig    `yaml:"xai" mapstructure:"xai"`
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	SMTP   mail.Config  `yaml:"smtp" mapstructure:"smtp"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// XAIConfig holds x.ai API settings.
type XAIConfig struct {
	Key          string `yaml:"key" mapstructure:"key"`
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
	SearchModel  string `yaml:"search_model" mapstructure:"search_model"`
	ScoringModel string `yaml:"scoring_model" mapstructure:"scoring_model"`
}

// SearchConfig holds contractor search defaults.
type SearchConfig struct {
	MaxResults  int    `yaml:"max_results" mapstructure:"max_results"`
	SkipReviews bool   `yaml:"skip_reviews" mapstructure:"skip_reviews"`
	PersonaPath string `yaml:"persona_path" mapstructure:"persona_path"`
}

// ServerConfig configures the web front-end.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SANTOSCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("xai.base_url", "https://api.x.ai/v1")
	v.SetDefault("xai.search_model", "grok-4")
	v.SetDefault("xai.scoring_model", "grok-3-fast")
	v.SetDefault("search.max_results", 5)
	v.SetDefault("search.skip_reviews", false)
	v.SetDefault("search.persona_path", "system.txt")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the settings a component depends on are present.
func (c *Config) Validate(component string) error {
	switch component {
	case "search":
		if c.XAI.Key == "" {
			return eris.New("config: xai.key is required (set SANTOSCORE_XAI_KEY)")
		}
	case "mail":
		if c.SMTP.Host == "" || c.SMTP.From == "" || c.SMTP.To == "" {
			return eris.New("config: smtp.host, smtp.from, and smtp.to are required")
		}
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
