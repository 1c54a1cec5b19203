// Package cmd implements the regform command tree.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-regform/internal/config"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
	cfgErr  error
)

var rootCmd = &cobra.Command{
	Use:   "regform",
	Short: "Registration form with schema validation and remote submission",
	Long: `regform validates a four field registration form (username, favourite
language, favourite food, terms agreement) and posts it as JSON to a remote
registration endpoint.

Fill it in the terminal, render it as HTML, or serve it to browsers.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: requireConfig,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/regform/config.yaml)")
	flags.String("endpoint", "", "registration endpoint URL")
	flags.Duration("timeout", 0, "registration request timeout")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text or json")
	flags.Bool("trace", false, "print OpenTelemetry spans to stderr")
	flags.String("contract", "", "OpenAPI document describing the registration endpoint (default: bundled)")
	flags.String("preset", "", "YAML file overriding form labels and title")

	// Bind flags to viper
	_ = viper.BindPFlag("endpoint", flags.Lookup("endpoint"))
	_ = viper.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log_format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("trace", flags.Lookup("trace"))
}

func initConfig() {
	cfg, cfgErr = config.Load(viper.GetViper(), cfgFile)
}

func requireConfig(_ *cobra.Command, _ []string) error {
	return cfgErr
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
