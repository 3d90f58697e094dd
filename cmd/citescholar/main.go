// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citescholar CLI. The root command
// searches for a paper by title, asks the user to confirm a match, and
// stores its BibTeX citation in a local SQLite database.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/citescholar/internal/secrets"
	"github.com/pdiddy/citescholar/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds API keys loaded from .secrets/ at startup.
	loadedSecrets = secrets.Secrets{}

	// logger receives diagnostics on stderr. Console interaction does not
	// go through it.
	logger = zap.NewNop()
)

// rootCmd searches, confirms, and stores a single citation.
var rootCmd = &cobra.Command{
	Use:   "citescholar",
	Short: "Find a paper by title and save its BibTeX citation",
	Long: `citescholar searches an academic index (OpenAlex or Semantic Scholar) for
a paper title, shows the candidates one at a time, and asks you to confirm the
right one. The confirmed paper's BibTeX citation is printed and saved to a
local SQLite database; identical citations are stored only once.`,
	Example: `  citescholar -t "Machine Learning" -c bibtex
  citescholar -t "Neural Networks" --no-save
  citescholar -t "Deep Learning" -s citations.db`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = l

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := s.Keys()
			sort.Strings(keys)
			logger.Info("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
	RunE: runCite,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./citescholar.yaml or ~/.config/citescholar/citescholar.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug diagnostics to stderr")

	flags := rootCmd.Flags()
	flags.StringP("title", "t", "", "title of the paper to search for")
	flags.StringP("citation-style", "c", string(types.StyleBibTeX), "citation style (only bibtex is supported)")
	flags.Bool("no-save", false, "do not save the citation to the database")
	flags.StringP("sqlite3", "s", types.DefaultDatabasePath, "SQLite3 database file path")
	flags.String("provider", string(types.ProviderOpenAlex), "search provider: openalex or semantic_scholar")
	flags.Int("page-size", 10, "candidates fetched per provider request")

	_ = rootCmd.MarkFlagRequired("title")
	rootCmd.MarkFlagsMutuallyExclusive("no-save", "sqlite3")

	_ = viper.BindPFlag("style", flags.Lookup("citation-style"))
	_ = viper.BindPFlag("store.path", flags.Lookup("sqlite3"))
	_ = viper.BindPFlag("search.provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("search.page_size", flags.Lookup("page-size"))
}

func initConfig() {
	// A .env file is optional; values already in the environment win.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("citescholar")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "citescholar"))
		}
	}

	viper.SetDefault("http.timeout", 30*time.Second)
	viper.SetDefault("http.user_agent", "citescholar/"+version)

	viper.SetEnvPrefix("CITESCHOLAR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds a console logger on stderr. Only warnings and errors
// are shown unless verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func main() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
