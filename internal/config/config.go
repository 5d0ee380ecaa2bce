// Package config provides Viper-based hierarchical configuration management:
// defaults, an optional config.yaml, then CATEGORIZER_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Server struct {
		Address         string `mapstructure:"address" yaml:"address"`
		ShutdownTimeout int    `mapstructure:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds"`
	} `mapstructure:"server" yaml:"server"`

	Models struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"models" yaml:"models"`

	Lexicon struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"lexicon" yaml:"lexicon"`

	Categorization struct {
		// StatisticalThreshold is the confidence a statistical prediction
		// must strictly exceed to win over the keyword path.
		StatisticalThreshold float64 `mapstructure:"statistical_threshold" yaml:"statistical_threshold"`
		// KeywordFloor is the minimum keyword score below which the
		// catch-all category is returned.
		KeywordFloor float64 `mapstructure:"keyword_floor" yaml:"keyword_floor"`
	} `mapstructure:"categorization" yaml:"categorization"`

	Training struct {
		TestFraction   float64 `mapstructure:"test_fraction" yaml:"test_fraction"`
		MaxFeatures    int     `mapstructure:"max_features" yaml:"max_features"`
		Epochs         int     `mapstructure:"epochs" yaml:"epochs"`
		LearningRate   float64 `mapstructure:"learning_rate" yaml:"learning_rate"`
		Regularization float64 `mapstructure:"regularization" yaml:"regularization"`
		Seed           int64   `mapstructure:"seed" yaml:"seed"`
	} `mapstructure:"training" yaml:"training"`

	AI struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		Model   string `mapstructure:"model" yaml:"model"`
		APIKey  string `mapstructure:"api_key" yaml:"-"` // Never serialize the API key
	} `mapstructure:"ai" yaml:"ai"`
}

// Load initializes Viper configuration with hierarchical loading.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.categorizer")
	v.AddConfigPath(".categorizer")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CATEGORIZER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but continue with defaults and env vars.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The Gemini key is always read from the conventional unprefixed variable.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("server.address", ":5000")
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("models.directory", "models")
	v.SetDefault("lexicon.file", "")

	v.SetDefault("categorization.statistical_threshold", 0.3)
	v.SetDefault("categorization.keyword_floor", 0.1)

	v.SetDefault("training.test_fraction", 0.2)
	v.SetDefault("training.max_features", 1000)
	v.SetDefault("training.epochs", 1000)
	v.SetDefault("training.learning_rate", 0.5)
	v.SetDefault("training.regularization", 1.0)
	v.SetDefault("training.seed", 42)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
}

func validate(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Server.Address == "" {
		return fmt.Errorf("server.address must not be empty")
	}

	if t := config.Categorization.StatisticalThreshold; t < 0 || t > 1 {
		return fmt.Errorf("categorization.statistical_threshold must be in [0,1], got: %v", t)
	}
	if f := config.Categorization.KeywordFloor; f < 0 || f > 1 {
		return fmt.Errorf("categorization.keyword_floor must be in [0,1], got: %v", f)
	}

	if tf := config.Training.TestFraction; tf <= 0 || tf >= 1 {
		return fmt.Errorf("training.test_fraction must be in (0,1), got: %v", tf)
	}
	if config.Training.MaxFeatures < 1 {
		return fmt.Errorf("training.max_features must be positive, got: %d", config.Training.MaxFeatures)
	}
	if config.Training.Epochs < 1 {
		return fmt.Errorf("training.epochs must be positive, got: %d", config.Training.Epochs)
	}

	if config.AI.Enabled && config.AI.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY required when AI labeling is enabled")
	}

	return nil
}
