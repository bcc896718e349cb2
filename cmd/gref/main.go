// Package main provides the gref CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/gref/internal/config"
	"github.com/matsen/gref/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool

	// verbose forces debug logging on stderr
	verbose bool

	// cfg is the loaded configuration, set before any subcommand runs
	cfg *config.Config

	// logger is replaced by a real logger before any subcommand runs
	logger = zap.NewNop()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gref",
	Short: "Pair guideline sections with the references they cite",
	Long: `gref splits a clinical guideline into numbered sections, finds the
bibliography entries each section cites, and renders a prompt per section
containing the section text and its references.

Citations are detected in brackets ([3, 5-7] or (12)), glued to a word
(myocarditis27), or as standalone numbers that exist in the bibliography.

Input files may be plain text or PDF; use - to read from stdin.
All commands output JSON by default; use --human for readable output.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug diagnostics to stderr")
	rootCmd.Version = Version
}

// setup loads .env, the config file and the logger.
func setup(cmd *cobra.Command, args []string) error {
	// Load .env file if present (for GREF_* overrides)
	_ = godotenv.Load()

	loaded, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	cfg = loaded

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	l, err := logging.New(level)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	logger = l

	logger.Debug("configuration loaded",
		zap.String("path", config.Path()),
		zap.String("template", cfg.Template),
		zap.Bool("standalone", cfg.StandaloneEnabled()))
	return nil
}
