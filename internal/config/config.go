package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	UI  UIConfig  `mapstructure:"ui"`
	Log LogConfig `mapstructure:"log"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme     string        `mapstructure:"theme"`      // classic | neon | mono
	AltScreen bool          `mapstructure:"alt_screen"` // run the TUI on the alternate screen
	NoticeTTL time.Duration `mapstructure:"notice_ttl"` // how long a notice stays visible
	Color     string        `mapstructure:"color"`      // auto | always | never
}

// LogConfig holds debug logging settings.
type LogConfig struct {
	File string `mapstructure:"file"` // empty disables logging
}

// Load reads configuration from file and env. Env var overrides use prefix TASKLIST_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("ui.theme", "classic")
	v.SetDefault("ui.alt_screen", true)
	v.SetDefault("ui.notice_ttl", 3*time.Second)
	v.SetDefault("ui.color", "auto")
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")

	if p := os.Getenv("TASKLIST_CONFIG"); p != "" {
		v.SetConfigFile(p)
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "tasklist"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TASKLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// a missing default file is fine; an explicit or broken one is not
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch strings.ToLower(c.UI.Theme) {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("ui.theme: unknown theme %q", c.UI.Theme)
	}
	switch strings.ToLower(c.UI.Color) {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("ui.color: want auto, always or never, got %q", c.UI.Color)
	}
	if c.UI.NoticeTTL <= 0 {
		return fmt.Errorf("ui.notice_ttl: must be positive, got %s", c.UI.NoticeTTL)
	}
	return nil
}
