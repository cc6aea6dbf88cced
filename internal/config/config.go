// Package config provides configuration types and defaults for wayfarer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/wayfarer/internal/geo"
	"github.com/zjrosen/wayfarer/internal/log"
	"github.com/zjrosen/wayfarer/internal/posts"
	"github.com/zjrosen/wayfarer/internal/tracing"
)

// Config holds all configuration options for wayfarer.
type Config struct {
	Store   StoreConfig    `mapstructure:"store"`
	API     APIConfig      `mapstructure:"api"`
	Theme   ThemeConfig    `mapstructure:"theme"`
	Geo     GeoConfig      `mapstructure:"geo"`
	Tracing tracing.Config `mapstructure:"tracing"`
	UI      UIConfig       `mapstructure:"ui"`
}

// StoreConfig locates the on-disk key-value store.
type StoreConfig struct {
	// Path is the sqlite file. Default: ~/.config/wayfarer/wayfarer.db
	Path string `mapstructure:"path"`

	// QuotaBytes caps the total size of stored keys and values.
	// 0 disables the quota. Default: 5 MiB
	QuotaBytes int `mapstructure:"quota_bytes"`
}

// APIConfig configures the post API.
type APIConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"` // 0 disables caching
}

// ThemeConfig holds theme options.
type ThemeConfig struct {
	// Preset names a built-in color preset. Empty means "default".
	Preset string `mapstructure:"preset"`

	// System is the system preference used when no explicit choice is
	// stored: "light", "dark", or "auto" (probe the terminal).
	System string `mapstructure:"system"`

	// Colors overrides individual color tokens, nested or dot notation:
	//   colors:
	//     text.primary: "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns Colors flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// GeoConfig configures location lookups.
type GeoConfig struct {
	// Permission is "granted", "denied" or "prompt".
	Permission  string        `mapstructure:"permission"`
	ProviderURL string        `mapstructure:"provider_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "auto" (default), "dark" or "light"
}

// DefaultQuotaBytes mirrors the usual browser storage allowance.
const DefaultQuotaBytes = 5 << 20

// ConfigDir returns ~/.config/wayfarer or "" if the home directory is
// unavailable.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "wayfarer")
}

// DefaultStorePath returns the default sqlite path.
func DefaultStorePath() string {
	dir := ConfigDir()
	if dir == "" {
		return "wayfarer.db"
	}
	return filepath.Join(dir, "wayfarer.db")
}

// DefaultTracesFilePath returns the default trace file for the file
// exporter.
func DefaultTracesFilePath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns a Config with default values.
func Defaults() Config {
	tr := tracing.DefaultConfig()
	tr.FilePath = DefaultTracesFilePath()
	return Config{
		Store: StoreConfig{
			Path:       DefaultStorePath(),
			QuotaBytes: DefaultQuotaBytes,
		},
		API: APIConfig{
			BaseURL:  posts.DefaultBaseURL,
			Timeout:  10 * time.Second,
			CacheTTL: 10 * time.Minute,
		},
		Theme: ThemeConfig{
			Preset: "",
			System: "auto",
		},
		Geo: GeoConfig{
			Permission:  string(geo.Prompt),
			ProviderURL: geo.DefaultProviderURL,
			Timeout:     geo.DefaultOptions().Timeout,
		},
		Tracing: tr,
		UI: UIConfig{
			ShowStatusBar: true,
			MarkdownStyle: "auto",
		},
	}
}

// Validate checks cfg for values the application cannot use.
func Validate(cfg Config) error {
	if cfg.Store.QuotaBytes < 0 {
		return fmt.Errorf("store.quota_bytes must be >= 0, got %d", cfg.Store.QuotaBytes)
	}
	if cfg.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must be >= 0, got %s", cfg.API.Timeout)
	}
	if cfg.API.CacheTTL < 0 {
		return fmt.Errorf("api.cache_ttl must be >= 0, got %s", cfg.API.CacheTTL)
	}
	switch cfg.Theme.System {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("theme.system must be \"auto\", \"light\" or \"dark\", got %q", cfg.Theme.System)
	}
	switch cfg.UI.MarkdownStyle {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("ui.markdown_style must be \"auto\", \"light\" or \"dark\", got %q", cfg.UI.MarkdownStyle)
	}
	if _, err := geo.ParsePermission(cfg.Geo.Permission); err != nil {
		return fmt.Errorf("geo.permission: %w", err)
	}
	if cfg.Geo.Timeout < 0 {
		return fmt.Errorf("geo.timeout must be >= 0, got %s", cfg.Geo.Timeout)
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateTracing checks tracing configuration. Empty values use defaults.
func ValidateTracing(tr tracing.Config) error {
	if tr.SampleRate < 0.0 || tr.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tr.SampleRate)
	}

	switch tr.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tr.Exporter)
	}

	if tr.Enabled {
		if tr.Exporter == "file" && tr.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tr.Exporter == "otlp" && tr.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as YAML with comments.
func DefaultConfigTemplate() string {
	return `# Wayfarer Configuration

# Local storage for favorites and the theme choice
store:
  # path: ~/.config/wayfarer/wayfarer.db
  quota_bytes: 5242880   # 0 disables the quota

# Destination API
api:
  base_url: https://jsonplaceholder.typicode.com/posts
  timeout: 10s
  cache_ttl: 10m         # 0 disables caching of fetched destinations

# Theme configuration
theme:
  # System preference used until you pick a theme with 't'.
  # auto probes the terminal background; light or dark forces it.
  # Editing this while wayfarer runs applies immediately.
  system: auto
  #
  # preset: nord
  #
  # Available presets:
  #   default           - Default wayfarer theme
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   catppuccin-latte  - Warm, cozy light theme
  #   dracula           - Dark theme with vibrant colors
  #   nord              - Arctic, north-bluish palette
  #   high-contrast     - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   text.primary: "#FFFFFF"
  #   status.error: "#FF0000"

# Location lookups
geo:
  permission: prompt     # granted, denied or prompt
  provider_url: https://ipapi.co/json/
  timeout: 10s

# UI settings
ui:
  show_status_bar: true
  # markdown_style: auto # auto (follows theme), dark or light

# Tracing
# tracing:
#   enabled: false                 # default: false
#   exporter: file                 # none, file, stdout, otlp (default: file)
#   file_path: ~/.config/wayfarer/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at configPath from the default
// template, creating the parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
