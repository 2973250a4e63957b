package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ruffctl/ruffctl/internal/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the rule catalog to the local catalog file",
	Long: `Download the rule catalog document and store it at the configured
catalog file path. Later commands read the local copy instead of the network.

Examples:
  # Refresh the local catalog
  ruffctl fetch

  # Fetch from a different location
  ruffctl fetch --url https://example.com/ruff-rules.json`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

var (
	fetchURL    string
	fetchOutput string
)

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchURL, "url", "", "catalog URL (default from config)")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "destination file (default is the configured catalog file)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fc := fetch.Config{
		URL:     cfg.Fetch.URL,
		Timeout: cfg.Fetch.Timeout,
		Retries: cfg.Fetch.Retries,
	}
	if fetchURL != "" {
		fc.URL = fetchURL
	}

	dest := cfg.Catalog.File
	if fetchOutput != "" {
		dest = fetchOutput
	}
	if dest == "" {
		return fmt.Errorf("no destination: set catalog.file in config or pass --output")
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}

	if err := fetch.FetchToFile(cmd.Context(), fc, dest); err != nil {
		var timeoutErr *fetch.TimeoutError
		if errors.As(err, &timeoutErr) {
			return fmt.Errorf("catalog download timed out after %d attempts: %w", fc.Retries+1, err)
		}
		return fmt.Errorf("downloading catalog: %w", err)
	}

	if !isQuiet() {
		fmt.Printf("catalog written to %s\n", dest)
	}
	return nil
}
