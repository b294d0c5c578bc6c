// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cardex CLI.
// See docs/ARCHITECTURE § Pipeline Interface.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the cardex CLI.
var rootCmd = &cobra.Command{
	Use:   "cardex",
	Short: "Extract quiz cards from two-column study-guide PDFs",
	Long: `cardex reads quiz-card study guides laid out in two columns per page,
reconstructs the structured cards (type, reference, club, question, answer),
and writes them to CSV or a reformatted PDF.

Extracted CSV files can also be ingested into a local searchable deck:
see the deck subcommands.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cardex.yaml or ~/.config/cardex/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cardex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cardex"))
		}
	}

	viper.SetEnvPrefix("CARDEX")
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
