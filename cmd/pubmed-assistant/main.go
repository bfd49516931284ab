// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubmed-assistant CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-assistant/internal/secrets"
	"github.com/pdiddy/pubmed-assistant/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, else the named secret, else "".
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the pubmed-assistant CLI.
var rootCmd = &cobra.Command{
	Use:   "pubmed-assistant",
	Short: "Build optimized PubMed queries and search the medical literature",
	Long: `pubmed-assistant turns natural-language research questions into structured
PubMed boolean queries. An AI model simplifies the question to base search
terms and detects filter parameters (clinical category, age group, time
period, article type, subjects); detections above the confidence threshold
are offered for one-tap confirmation and everything else is elicited
interactively. The assembled query can be run against PubMed or PMC via
NCBI E-utilities and the results saved as JSON or exported as Obsidian
Markdown notes.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubmed-assistant.yaml or ~/.config/pubmed-assistant/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubmed-assistant")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubmed-assistant"))
		}
	}

	viper.SetEnvPrefix("PUBMED_ASSISTANT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// aiConfig assembles the AI settings from config and secrets.
func aiConfig() types.AIConfig {
	cfg := types.AIConfig{
		Model:       viper.GetString("ai.model"),
		APIKey:      secretDefault("gemini-api-key", viper.GetString("ai.api_key")),
		Temperature: viper.GetFloat64("ai.temperature"),
		MaxRetries:  viper.GetInt("ai.max_retries"),
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.1
	}
	return cfg
}

// pubmedConfig assembles the E-utilities settings from config and secrets.
func pubmedConfig() types.PubMedConfig {
	cfg := types.PubMedConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("pubmed.timeout"),
			UserAgent: "pubmed-assistant/" + version,
		},
		APIKey:     secretDefault("ncbi-api-key", viper.GetString("pubmed.api_key")),
		UsePMC:     viper.GetBool("pubmed.use_pmc"),
		MaxResults: viper.GetInt("pubmed.max_results"),
		ResultsDir: viper.GetString("pubmed.results_dir"),
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.ResultsDir == "" {
		cfg.ResultsDir = "results"
	}
	return cfg
}

// dbName returns the E-utilities database a config selects.
func dbName(cfg types.PubMedConfig) string {
	if cfg.UsePMC {
		return "pmc"
	}
	return "pubmed"
}

// historyConfig assembles the session history settings.
func historyConfig() types.HistoryConfig {
	cfg := types.HistoryConfig{
		HistoryDir: viper.GetString("history.dir"),
		MaxResults: viper.GetInt("history.max_results"),
	}
	if cfg.HistoryDir == "" {
		cfg.HistoryDir = "history"
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
