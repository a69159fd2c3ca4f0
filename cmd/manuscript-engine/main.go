// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the manuscript-engine CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the manuscript-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "manuscript-engine",
	Short: "Structural analysis and LaTeX generation for manuscripts",
	Long: `manuscript-engine converts word-processor document models into
publication-ready LaTeX. It analyzes document structure with confidence
scoring (sections, authors, tables, lists, equations), then renders the
result against a publisher template.

Each pipeline stage is a subcommand: analyze inspects a document and
reports the detected structure; generate runs the full pipeline and
emits LaTeX; templates lists the available publisher formats.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./manuscript-engine.yaml or ~/.config/manuscript-engine/config.yaml)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress progress output")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("manuscript-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "manuscript-engine"))
		}
	}

	viper.SetEnvPrefix("MANUSCRIPT_ENGINE")
	viper.AutomaticEnv()

	viper.SetDefault("analysis.table_similarity_threshold", 0.82)
	viper.SetDefault("analysis.symbol_density_threshold", 0.15)
	viper.SetDefault("analysis.min_confidence", 0.5)
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.dir", ".cache")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the stage settings from viper.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Analysis: types.AnalysisConfig{
			TableSimilarityThreshold: viper.GetFloat64("analysis.table_similarity_threshold"),
			SymbolDensityThreshold:   viper.GetFloat64("analysis.symbol_density_threshold"),
			MinConfidence:            viper.GetFloat64("analysis.min_confidence"),
		}.WithDefaults(),
		Cache: types.CacheConfig{
			Enabled: viper.GetBool("cache.enabled"),
			Dir:     viper.GetString("cache.dir"),
		},
	}
}

// progressWriter honors --quiet.
func progressWriter(cmd *cobra.Command) io.Writer {
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		return io.Discard
	}
	return os.Stderr
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
