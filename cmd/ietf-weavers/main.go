// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ietf-weavers CLI.
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is shared by every subcommand; built in PersistentPreRunE so
// the --verbose flag has been parsed.
var logger *zap.Logger

// rootCmd is the base command for the ietf-weavers CLI.
var rootCmd = &cobra.Command{
	Use:   "ietf-weavers",
	Short: "Social network analysis of IETF mailing list archives",
	Long: `ietf-weavers turns IETF mailing list archives into an interaction
network: it resolves sender identities, reconstructs reply threads, builds a
weighted graph of who talks to whom, computes centrality and community
metrics, assigns discussion topics, and exports the result for visualization.

Each stage is a subcommand: acquire fetches archives from the mail archive
API, analyze runs the full pipeline over a local dump, and store manages the
network database.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg = zap.NewDevelopmentConfig()
		}
		log, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = log
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./ietf-weavers.yaml or ~/.config/ietf-weavers/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ietf-weavers")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ietf-weavers"))
		}
	}

	viper.SetEnvPrefix("IETF_WEAVERS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
