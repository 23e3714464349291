// Package config manages application configuration from files and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Excel struct {
		SheetName   string `mapstructure:"sheet_name"`
		TrailingTab bool   `mapstructure:"trailing_tab"`
		NoClobber   bool   `mapstructure:"no_clobber"`
	} `mapstructure:"excel"`
	CSV struct {
		Encoding string `mapstructure:"encoding"`
	} `mapstructure:"csv"`
	Errors struct {
		// Legacy prints errors to stdout and exits 0.
		Legacy bool `mapstructure:"legacy"`
	} `mapstructure:"errors"`
	Output struct {
		Color bool `mapstructure:"color"`
	} `mapstructure:"output"`
	Watch struct {
		DebounceMs int `mapstructure:"debounce_ms"`
	} `mapstructure:"watch"`
}

// Keys lists every known configuration key in display order.
var Keys = []string{
	"excel.sheet_name",
	"excel.trailing_tab",
	"excel.no_clobber",
	"csv.encoding",
	"errors.legacy",
	"output.color",
	"watch.debounce_ms",
}

// Load reads the configuration from ~/.devkit/config.yaml and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir())

	setDefaults()

	// DEVKIT_EXCEL_SHEET_NAME overrides excel.sheet_name
	viper.SetEnvPrefix("DEVKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file (non-fatal if missing)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("could not read %s: %w", ConfigPath(), err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("excel.sheet_name", "Sheet1")
	viper.SetDefault("excel.trailing_tab", false)
	viper.SetDefault("excel.no_clobber", false)
	viper.SetDefault("csv.encoding", "utf-8")
	viper.SetDefault("errors.legacy", false)
	viper.SetDefault("output.color", true)
	viper.SetDefault("watch.debounce_ms", 500)
}

// Set updates a configuration value and persists it.
func Set(key, value string) error {
	if !isKnownKey(key) {
		return fmt.Errorf("unknown config key %q — known keys: %s", key, strings.Join(Keys, ", "))
	}
	viper.Set(key, value)
	return SaveConfig()
}

// Get returns a configuration value as a string.
func Get(key string) string {
	return viper.GetString(key)
}

// SaveConfig writes the current settings to the config file.
func SaveConfig() error {
	dir := configDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}

	path := ConfigPath()
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}
	return nil
}

// ConfigPath returns the config file location.
func ConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// ShowConfig renders every known key with its effective value.
func ShowConfig() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Config: %s\n\n", ConfigPath()))
	for _, key := range Keys {
		sb.WriteString(fmt.Sprintf("  %-20s %s\n", key+":", viper.GetString(key)))
	}

	return sb.String()
}

func isKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".devkit"
	}
	return filepath.Join(home, ".devkit")
}
