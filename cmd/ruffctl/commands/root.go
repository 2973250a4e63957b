// Package commands contains all CLI commands for ruffctl.
//
// This package uses the Cobra library for CLI management.
// Each command is defined in its own file and registered in init().
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ruffctl/ruffctl/internal/config"
	"github.com/ruffctl/ruffctl/internal/logger"
)

var (
	// cfgFile holds the path to the config file (from --config flag)
	cfgFile string

	// verbose enables detailed output
	verbose bool

	// quiet suppresses all output except errors
	quiet bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ruffctl",
	Short: "Manage a Ruff lint ruleset from the command line",
	Long: `ruffctl manages which Ruff lint rules are enabled for your project.

It loads the full rule catalog, remembers which rules you disabled and why,
and exports the result as a ready-to-paste configuration block.

Examples:
  # Browse all rules in a category
  ruffctl list --category pycodestyle

  # Disable a rule with a reason
  ruffctl disable E501 --reason "legacy line lengths"

  # Export the current selection as pyproject TOML
  ruffctl export --format toml`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose && !quiet {
			logger.SetLevel(logger.LevelDebug)
		}
		if quiet {
			logger.SetLevel(logger.LevelError)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is .ruffctl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
}

// isVerbose returns true if verbose mode is enabled
func isVerbose() bool {
	return verbose && !quiet
}

// isQuiet returns true if quiet mode is enabled
func isQuiet() bool {
	return quiet
}

// loadConfig loads the app configuration, honoring the --config flag.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	return config.LoadDefault()
}
