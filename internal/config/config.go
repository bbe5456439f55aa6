// Package config loads the bagsctl configuration from <home>/config.yaml and BAGSCTL_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pushchain/voterbags/x/voterbags/types"
)

const (
	configFileName = "config.yaml"
	envPrefix      = "BAGSCTL"

	BackendGoLevelDB = "goleveldb"
	BackendMemDB     = "memdb"
)

const (
	LogLevelKey   = "log_level"
	LogFormatKey  = "log_format"
	LogSamplerKey = "log_sampler"
	ThresholdsKey = "thresholds"
	DBBackendKey  = "db_backend"
	DataDirKey    = "data_dir"
)

const (
	defaultLogLevel   = 1 // zerolog.InfoLevel
	defaultLogFormat  = "console"
	defaultThresholds = "10,20,50,100,200,500,1000"
	defaultDataDir    = "data"
)

type Config struct {
	LogLevel   int    `mapstructure:"log_level" json:"log_level"`
	LogFormat  string `mapstructure:"log_format" json:"log_format"`
	LogSampler bool   `mapstructure:"log_sampler" json:"log_sampler"`

	// Thresholds are the comma separated bag upper bounds, e.g. "10,20,50".
	Thresholds string `mapstructure:"thresholds" json:"thresholds"`

	DBBackend string `mapstructure:"db_backend" json:"db_backend"`
	DataDir   string `mapstructure:"data_dir" json:"data_dir"`
}

// ParsedThresholds returns the configured bag thresholds.
func (c Config) ParsedThresholds() (types.Thresholds, error) {
	return types.ParseThresholds(c.Thresholds)
}

// DataPath resolves DataDir against home unless it is absolute.
func (c Config) DataPath(home string) string {
	if filepath.IsAbs(c.DataDir) {
		return c.DataDir
	}
	return filepath.Join(home, c.DataDir)
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	cfg := Config{LogLevel: defaultLogLevel, Thresholds: defaultThresholds}
	_ = validateConfig(&cfg)
	return cfg
}

func setDefaultConfigValues(v *viper.Viper) {
	v.SetDefault(LogLevelKey, defaultLogLevel)
	v.SetDefault(LogFormatKey, defaultLogFormat)
	v.SetDefault(LogSamplerKey, false)
	v.SetDefault(ThresholdsKey, defaultThresholds)
	v.SetDefault(DBBackendKey, BackendGoLevelDB)
	v.SetDefault(DataDirKey, defaultDataDir)
}

func validateConfig(cfg *Config) error {
	// Validate log level
	if cfg.LogLevel < -1 || cfg.LogLevel > 5 {
		return fmt.Errorf("log level must be between -1 and 5")
	}

	// Set defaults
	if cfg.LogFormat == "" {
		cfg.LogFormat = defaultLogFormat
	}
	if cfg.DBBackend == "" {
		cfg.DBBackend = BackendGoLevelDB
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}

	// Validate log format
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return fmt.Errorf("log format must be 'json' or 'console'")
	}

	// Validate db backend
	if cfg.DBBackend != BackendGoLevelDB && cfg.DBBackend != BackendMemDB {
		return fmt.Errorf("db backend must be '%s' or '%s'", BackendGoLevelDB, BackendMemDB)
	}

	if _, err := cfg.ParsedThresholds(); err != nil {
		return fmt.Errorf("invalid thresholds: %w", err)
	}

	return nil
}

// newViper returns a viper instance reading <home>/config.yaml and BAGSCTL_* environment variables.
func newViper(home string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(filepath.Join(home, configFileName))
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	setDefaultConfigValues(v)
	return v
}

// Load reads the config from <home>/config.yaml. A missing file yields the defaults; environment
// variables such as BAGSCTL_THRESHOLDS override both.
func Load(home string) (Config, error) {
	v := newViper(home)

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(v.ConfigFileUsed()); !os.IsNotExist(statErr) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the given config to <home>/config.yaml.
func Save(cfg *Config, home string) error {
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := os.MkdirAll(home, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set(LogLevelKey, cfg.LogLevel)
	v.Set(LogFormatKey, cfg.LogFormat)
	v.Set(LogSamplerKey, cfg.LogSampler)
	v.Set(ThresholdsKey, cfg.Thresholds)
	v.Set(DBBackendKey, cfg.DBBackend)
	v.Set(DataDirKey, cfg.DataDir)

	if err := v.WriteConfigAs(filepath.Join(home, configFileName)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
