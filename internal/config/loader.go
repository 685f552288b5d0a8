package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads the configuration from path. An empty path reads nothing and
// returns the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	normalize(cfg)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("connection.host", d.Connection.Host)
	v.SetDefault("connection.port", d.Connection.Port)
	v.SetDefault("connection.username", d.Connection.Username)
	v.SetDefault("connection.database", "")
	v.SetDefault("connection.password", "")
	v.SetDefault("connection.sslmode", "")

	v.SetDefault("preferences.theme", d.Preferences.Theme)
	v.SetDefault("preferences.schema", d.Preferences.Schema)
	v.SetDefault("preferences.page_size", d.Preferences.PageSize)
	v.SetDefault("preferences.use_keyring", false)
	v.SetDefault("preferences.query_timeout", "0s")
	v.SetDefault("preferences.log_level", d.Preferences.LogLevel)
}

func normalize(cfg *Config) {
	if cfg.Preferences.PageSize <= 0 {
		cfg.Preferences.PageSize = DefaultPageSize
	}
	if cfg.Preferences.Schema == "" {
		cfg.Preferences.Schema = DefaultSchema
	}
	if cfg.Preferences.QueryTimeout < 0 {
		cfg.Preferences.QueryTimeout = 0
	}
}
