package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig locates the SQLite database file.
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

// LogConfig controls zerolog output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// BookingConfig holds booking-engine policies.
type BookingConfig struct {
	// MissingAccountPolicy decides what CreateQuick does when a fallback
	// account number does not exist: "fail" or "partial".
	MissingAccountPolicy string `mapstructure:"missing_account_policy"`
}

// KontierungConfig locates the optional rule-set override file.
type KontierungConfig struct {
	RulesFile string `mapstructure:"rules_file"`
}

// Config is the top-level buchfink.yaml configuration.
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Log        LogConfig        `mapstructure:"log"`
	Booking    BookingConfig    `mapstructure:"booking"`
	Kontierung KontierungConfig `mapstructure:"kontierung"`
}

// Load reads configuration from path (default "buchfink.yaml" in the
// working directory), with BUCHFINK_* environment overrides. A missing
// file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("database.path", "data/buchfink.db")
	v.SetDefault("database.log_mode", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("booking.missing_account_policy", "fail")
	v.SetDefault("kontierung.rules_file", "")

	if path == "" {
		v.SetConfigName("buchfink")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("BUCHFINK")
	// Nested keys: database.path becomes BUCHFINK_DATABASE_PATH.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Default returns a Config with the same defaults Load applies.
func Default() *Config {
	return &Config{
		Database:   DatabaseConfig{Path: "data/buchfink.db"},
		Log:        LogConfig{Level: "info", Format: "console"},
		Booking:    BookingConfig{MissingAccountPolicy: "fail"},
		Kontierung: KontierungConfig{},
	}
}
