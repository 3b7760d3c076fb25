// Package cmd implements the uitrack command line interface.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/uitrack/uitrack/internal/config"
	"github.com/uitrack/uitrack/internal/output"
	"github.com/uitrack/uitrack/internal/version"
)

var (
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "uitrack",
	Short: "Track UI element positions for automation agents",
	Long: `uitrack maintains a live registry of UI element identifiers and screen
positions so automation agents can locate and interact with elements
instead of relying on screenshot analysis.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/uitrack/config.yaml)")
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if pretty, err := rootCmd.PersistentFlags().GetBool("pretty"); err == nil {
			output.PrettyOutput = pretty
		}
		return nil
	}
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("registry.capacity", defaults.Registry.Capacity)
	viper.SetDefault("registry.max_identifier_len", defaults.Registry.MaxIdentifierLen)
	viper.SetDefault("registry.max_context_bytes", defaults.Registry.MaxContextBytes)
	viper.SetDefault("registry.max_coordinate", defaults.Registry.MaxCoordinate)
	viper.SetDefault("registry.denylist", defaults.Registry.Denylist)
	viper.SetDefault("wait.poll_interval", defaults.Wait.PollInterval)
	viper.SetDefault("server.transport", defaults.Server.Transport)
	viper.SetDefault("server.port", defaults.Server.Port)
	viper.SetDefault("server.cache_ttl", defaults.Server.CacheTTL)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "uitrack"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Missing config file means defaults; a malformed one is surfaced.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "uitrack: read config: %v\n", err)
		}
	}

	cfg = config.Defaults()
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "uitrack: parse config: %v\n", err)
		cfg = config.Defaults()
	}
}
