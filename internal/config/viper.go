package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Tolerances holds the matching slack for one record family.
type Tolerances struct {
	ToleranceDays      int     `mapstructure:"tolerance_days" yaml:"tolerance_days"`
	AmountTolerancePct float64 `mapstructure:"amount_tolerance_pct" yaml:"amount_tolerance_pct"`
}

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"data" yaml:"data"`

	Cycles struct {
		MaxCycles int `mapstructure:"max_cycles" yaml:"max_cycles"`
	} `mapstructure:"cycles" yaml:"cycles"`

	// Matching tolerances per record family. Loans default stricter than
	// discretionary budgets.
	Matching struct {
		Liability Tolerances `mapstructure:"liability" yaml:"liability"`
		Budget    Tolerances `mapstructure:"budget" yaml:"budget"`
		Goal      Tolerances `mapstructure:"goal" yaml:"goal"`
	} `mapstructure:"matching" yaml:"matching"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then a config.yaml from $HOME/.recur, ./.recur or the working
// directory, then RECUR_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.recur")
	v.AddConfigPath(".recur")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RECUR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars on a broken file.
			Logger.Warnf("error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", "")

	v.SetDefault("cycles.max_cycles", 12)

	v.SetDefault("matching.liability.tolerance_days", 3)
	v.SetDefault("matching.liability.amount_tolerance_pct", 0.005)
	v.SetDefault("matching.budget.tolerance_days", 10)
	v.SetDefault("matching.budget.amount_tolerance_pct", 0.05)
	v.SetDefault("matching.goal.tolerance_days", 7)
	v.SetDefault("matching.goal.amount_tolerance_pct", 0.01)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Cycles.MaxCycles < 1 || config.Cycles.MaxCycles > 1000 {
		return fmt.Errorf("cycles.max_cycles must be between 1 and 1000, got: %d", config.Cycles.MaxCycles)
	}

	for name, t := range map[string]Tolerances{
		"liability": config.Matching.Liability,
		"budget":    config.Matching.Budget,
		"goal":      config.Matching.Goal,
	} {
		if t.ToleranceDays < 0 {
			return fmt.Errorf("matching.%s.tolerance_days must not be negative, got: %d", name, t.ToleranceDays)
		}
		if t.AmountTolerancePct < 0.0 || t.AmountTolerancePct > 1.0 {
			return fmt.Errorf("matching.%s.amount_tolerance_pct must be between 0.0 and 1.0, got: %f", name, t.AmountTolerancePct)
		}
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
