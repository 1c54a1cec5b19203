// Package config provides configuration types, defaults and loading for
// regform.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. REGFORM_ENDPOINT.
const EnvPrefix = "REGFORM"

// Config holds all configuration options for regform.
type Config struct {
	Endpoint   string        `mapstructure:"endpoint"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Addr       string        `mapstructure:"addr"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	LogLevel   string        `mapstructure:"log_level"`
	LogFormat  string        `mapstructure:"log_format"` // "text" (default) or "json"
	Trace      bool          `mapstructure:"trace"`
	Theme      ThemeConfig   `mapstructure:"theme"`
}

// ThemeConfig selects the HTML theme.
type ThemeConfig struct {
	Name    string `mapstructure:"name"`
	Variant string `mapstructure:"variant"` // "" or "dark" for the built-in theme
	// Tokens override individual theme tokens, e.g. color-accent: "#ff0000".
	Tokens map[string]string `mapstructure:"tokens"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Endpoint:   "https://webapis.bloomtechdev.com/registration",
		Timeout:    10 * time.Second,
		Addr:       ":8080",
		SessionTTL: 30 * time.Minute,
		LogLevel:   "info",
		LogFormat:  "text",
		Theme: ThemeConfig{
			Name: "regform",
		},
	}
}

// SetDefaults registers Defaults on v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("addr", d.Addr)
	v.SetDefault("session_ttl", d.SessionTTL)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("trace", d.Trace)
	v.SetDefault("theme.name", d.Theme.Name)
	v.SetDefault("theme.variant", d.Theme.Variant)
}

// Load resolves configuration into v and returns it validated.
//
// Config lookup order:
//  1. cfgFile, when set
//  2. .regform/config.yaml (current directory)
//  3. ~/.config/regform/config.yaml (user config)
//
// A missing file is not an error. Environment variables prefixed with
// REGFORM_ and flags bound to v override file values.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if _, err := os.Stat(filepath.Join(".regform", "config.yaml")); err == nil {
		v.SetConfigFile(filepath.Join(".regform", "config.yaml"))
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "regform"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", describe(v, cfgFile), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the commands cannot run with.
func (c Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.Endpoint))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: endpoint %q must be an absolute http(s) url", c.Endpoint)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("config: addr is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: session_ttl must be positive, got %s", c.SessionTTL)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log_level %q must be one of debug, info, warn, error", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config: log_format %q must be text or json", c.LogFormat)
	}
	return nil
}

func describe(v *viper.Viper, cfgFile string) string {
	if used := v.ConfigFileUsed(); used != "" {
		return used
	}
	if cfgFile != "" {
		return cfgFile
	}
	return "config file"
}
