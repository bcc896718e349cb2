package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/gref/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  gref config                             # Show all config
  gref config template                    # Get specific value
  gref config template ~/prompts/obs.tmpl # Set value
  gref config standalone false            # Disable standalone numbers

Keys:
  template        Path to a custom prompt template (text/template syntax)
  standalone      Match standalone numbers as citations (true/false, default true)
  preview-length  Section preview length in bytes (default 100)
  log-level       debug, info, warn or error (default warn)

The config file lives at $XDG_CONFIG_HOME/gref/config.yml. Environment
variables GREF_TEMPLATE, GREF_STANDALONE, GREF_PREVIEW_LENGTH and
GREF_LOG_LEVEL (also read from .env) override it.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	// No args: show effective config, including environment overrides
	if len(args) == 0 {
		values := make(map[string]string, len(config.Keys))
		for _, key := range config.Keys {
			v, _ := cfg.Get(key)
			values[key] = v
		}
		if humanOutput {
			outputHuman("config: %s\n", config.Path())
			for _, key := range config.Keys {
				outputHuman("%-15s %s\n", key+":", values[key])
			}
			return nil
		}
		return outputJSON(values)
	}

	key := config.NormalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		v, err := cfg.Get(key)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			outputHuman("%s\n", v)
			return nil
		}
		return outputJSON(map[string]string{key: v})
	}

	// Two args: set value in the file, without environment overrides
	path := config.Path()
	fileCfg, err := config.LoadFile(path)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := fileCfg.Set(key, args[1]); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := fileCfg.Save(path); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}
	config.ResetCache()

	value, _ := fileCfg.Get(key)
	if humanOutput {
		outputHuman("Updated %s to %s\n", key, value)
		return nil
	}
	return outputJSON(UpdateResponse{
		Status: "updated",
		Key:    key,
		Value:  value,
	})
}
