package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// SetDefaults registers every default with v so keys absent from the file
// still unmarshal to Defaults().
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.quota_bytes", d.Store.QuotaBytes)
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.cache_ttl", d.API.CacheTTL)
	v.SetDefault("theme.preset", d.Theme.Preset)
	v.SetDefault("theme.system", d.Theme.System)
	v.SetDefault("geo.permission", d.Geo.Permission)
	v.SetDefault("geo.provider_url", d.Geo.ProviderURL)
	v.SetDefault("geo.timeout", d.Geo.Timeout)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
	v.SetDefault("ui.show_status_bar", d.UI.ShowStatusBar)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
}

// Unmarshal decodes v into a Config and validates it.
func Unmarshal(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
