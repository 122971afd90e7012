package config

import (
	"fmt"
	"os"
	"strings"
)

// SettingSource represents where an effective setting comes from.
type SettingSource string

const (
	SourceEnv     SettingSource = "env"
	SourceConfig  SettingSource = "config"
	SourceDefault SettingSource = "default"
)

// SettingStatus describes one effective setting for the status command.
type SettingStatus struct {
	Key    string        `json:"key"`
	Value  string        `json:"value"`
	Source SettingSource `json:"source"`
	EnvVar string        `json:"env_var"`
}

// CheckSettings returns the effective value and origin of every setting.
func CheckSettings(cfg *Config) []SettingStatus {
	return []SettingStatus{
		checkSetting("provider.base_url", cfg.Provider.BaseURL),
		checkSetting("provider.timeout_sec", cfg.Provider.TimeoutSec),
		checkSetting("provider.rate_per_sec", cfg.Provider.RatePerSec),
		checkSetting("provider.burst", cfg.Provider.Burst),
		checkSetting("provider.cache_ttl", cfg.Provider.CacheTTL),
		checkSetting("analysis.years", cfg.Analysis.Years),
		checkSetting("analysis.latest", cfg.Analysis.Latest),
		checkSetting("analysis.ticker_suffix", cfg.Analysis.TickerSuffix),
		checkSetting("analysis.models", cfg.Analysis.Models),
		checkSetting("report.format", cfg.Report.Format),
		checkSetting("report.locale", cfg.Report.Locale),
		checkSetting("logging.level", cfg.Logging.Level),
		checkSetting("logging.format", cfg.Logging.Format),
	}
}

// EnvVar returns the environment variable that overrides key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// checkSetting works out whether value came from the environment, a config
// file or the built-in default.
func checkSetting(key string, value any) SettingStatus {
	status := SettingStatus{
		Key:    key,
		Value:  formatValue(value),
		EnvVar: EnvVar(key),
	}

	switch {
	case os.Getenv(status.EnvVar) != "":
		status.Source = SourceEnv
	case status.Value != formatValue(defaultValue(key)):
		status.Source = SourceConfig
	default:
		status.Source = SourceDefault
	}
	return status
}

func defaultValue(key string) any {
	v := newViper()
	return v.Get(key)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case []string:
		return strings.Join(x, ",")
	case []any:
		parts := make([]string, len(x))
		for i, p := range x {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(x)
	}
}
