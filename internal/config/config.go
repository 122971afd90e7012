// Package config handles configuration loading for analisefin.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/seenimoa/analisefin/internal/statement"
	"github.com/seenimoa/analisefin/pkg/utils"
)

// EnvPrefix prefixes every environment override, e.g. ANALISEFIN_REPORT_FORMAT.
const EnvPrefix = "ANALISEFIN"

// Config represents the complete application configuration.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider" yaml:"provider"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Report   ReportConfig   `mapstructure:"report"   yaml:"report"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// ProviderConfig holds the Yahoo Finance client settings.
type ProviderConfig struct {
	BaseURL    string  `mapstructure:"base_url"     yaml:"base_url"`
	TimeoutSec int     `mapstructure:"timeout_sec"  yaml:"timeout_sec"`
	RatePerSec float64 `mapstructure:"rate_per_sec" yaml:"rate_per_sec"`
	Burst      int     `mapstructure:"burst"        yaml:"burst"`
	CacheTTL   int     `mapstructure:"cache_ttl"    yaml:"cache_ttl"` // seconds
	UserAgent  string  `mapstructure:"user_agent"   yaml:"user_agent"`
}

// Timeout returns the request timeout as a duration.
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSec) * time.Second
}

// CacheDuration returns the statement cache TTL as a duration.
func (p ProviderConfig) CacheDuration() time.Duration {
	return time.Duration(p.CacheTTL) * time.Second
}

// AnalysisConfig selects what gets analyzed.
type AnalysisConfig struct {
	Years        []string `mapstructure:"years"         yaml:"years"`  // fiscal year-end dates, e.g. "2023-12-31"
	Latest       int      `mapstructure:"latest"        yaml:"latest"` // used when years is empty
	TickerSuffix string   `mapstructure:"ticker_suffix" yaml:"ticker_suffix"`
	Models       []string `mapstructure:"models"        yaml:"models"`
}

// ReportConfig controls report rendering.
type ReportConfig struct {
	Format string `mapstructure:"format" yaml:"format"` // "text", "markdown", "html", "csv", "json"
	Locale string `mapstructure:"locale" yaml:"locale"` // BCP 47 tag, e.g. "pt-BR"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Formats lists the accepted report formats; "md" is short for markdown.
var Formats = []string{"text", "markdown", "md", "html", "csv", "json"}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.analisefin/config.yaml (home directory)
//  3. /etc/analisefin/config.yaml (system)
//
// Environment variables override config file values.
// Format: ANALISEFIN_<SECTION>_<KEY>, e.g., ANALISEFIN_PROVIDER_RATE_PER_SEC
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".analisefin"))
	v.AddConfigPath("/etc/analisefin")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Provider defaults
	v.SetDefault("provider.base_url", "https://query2.finance.yahoo.com")
	v.SetDefault("provider.timeout_sec", 30)
	v.SetDefault("provider.rate_per_sec", 2.0)
	v.SetDefault("provider.burst", 3)
	v.SetDefault("provider.cache_ttl", 900) // 15 minutes
	v.SetDefault("provider.user_agent", "")

	// Analysis defaults
	v.SetDefault("analysis.years", append([]string(nil), statement.DefaultYears...))
	v.SetDefault("analysis.latest", statement.DefaultLatest)
	v.SetDefault("analysis.ticker_suffix", utils.DefaultSuffix)
	v.SetDefault("analysis.models", []string{"fleuriet", "dupont", "zscore", "kanitz"})

	// Report defaults
	v.SetDefault("report.format", "text")
	v.SetDefault("report.locale", "pt-BR")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate rejects settings the rest of the program cannot work with.
func (c *Config) Validate() error {
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("config: provider.base_url is empty")
	}
	if c.Provider.RatePerSec <= 0 {
		return fmt.Errorf("config: provider.rate_per_sec must be positive, got %v", c.Provider.RatePerSec)
	}
	if c.Provider.Burst < 1 {
		return fmt.Errorf("config: provider.burst must be at least 1, got %d", c.Provider.Burst)
	}
	if c.Analysis.Latest < 1 && len(c.Analysis.Years) == 0 {
		return fmt.Errorf("config: analysis.years is empty and analysis.latest is %d", c.Analysis.Latest)
	}
	if !validFormat(c.Report.Format) {
		return fmt.Errorf("config: unknown report.format %q (want one of %s)",
			c.Report.Format, strings.Join(Formats, ", "))
	}
	return nil
}

func validFormat(f string) bool {
	f = strings.ToLower(strings.TrimSpace(f))
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
