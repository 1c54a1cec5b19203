package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults_AreValid(t *testing.T) {
	require.NoError(t, Defaults().Validate())
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
endpoint: http://localhost:9000/registration
timeout: 3s
addr: 127.0.0.1:9090
log_level: debug
log_format: json
theme:
  variant: dark
  tokens:
    color-accent: "#ff0000"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9000/registration", cfg.Endpoint)
	require.Equal(t, 3*time.Second, cfg.Timeout)
	require.Equal(t, "127.0.0.1:9090", cfg.Addr)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL, "unset keys keep defaults")
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, "regform", cfg.Theme.Name)
	require.Equal(t, "dark", cfg.Theme.Variant)
	require.Equal(t, "#ff0000", cfg.Theme.Tokens["color-accent"])
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: 3s\n"), 0o600))

	t.Setenv("REGFORM_TIMEOUT", "7s")
	t.Setenv("REGFORM_THEME_VARIANT", "dark")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, 7*time.Second, cfg.Timeout)
	require.Equal(t, "dark", cfg.Theme.Variant)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: /registration\n"), 0o600))

	_, err := Load(viper.New(), path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "absolute http(s) url")
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		mutate func(*Config)
		want   string
	}{
		"zero timeout":    {mutate: func(c *Config) { c.Timeout = 0 }, want: "timeout must be positive"},
		"empty addr":      {mutate: func(c *Config) { c.Addr = " " }, want: "addr is required"},
		"zero ttl":        {mutate: func(c *Config) { c.SessionTTL = 0 }, want: "session_ttl must be positive"},
		"bad level":       {mutate: func(c *Config) { c.LogLevel = "loud" }, want: "log_level"},
		"bad format":      {mutate: func(c *Config) { c.LogFormat = "xml" }, want: "log_format"},
		"relative target": {mutate: func(c *Config) { c.Endpoint = "registration" }, want: "endpoint"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}
