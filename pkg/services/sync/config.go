package sync

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config drives one sync run: which profile to pull from and how far back to
// look when the local store is empty.
type Config struct {
	ProfilePath string `mapstructure:"profile_path"`
	Profile     string `mapstructure:"profile"`
	WindowDays  int    `mapstructure:"window_days"`
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("window_days", 30)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sync config: %w", err)
	}
	if cfg.Profile == "" {
		return nil, fmt.Errorf("sync config: profile is required")
	}
	return &cfg, nil
}
