package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ruffctl/ruffctl/internal/generate"
	"github.com/ruffctl/ruffctl/internal/templates"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current rule selection as a configuration document",
	Long: `Export the full rule selection (ignoring any list filters) as a
configuration document.

Formats:
  toml - pyproject-style [tool.ruff.lint] block
  json - equivalent nested JSON document

Examples:
  # TOML to stdout
  ruffctl export

  # Sorted JSON into a file
  ruffctl export --format json --sort -o ruff.json

  # Use a named template
  ruffctl export --template sorted`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat     string
	exportNoComments bool
	exportSort       bool
	exportOutput     string
	exportTemplate   string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "output format: toml, json (default from config)")
	exportCmd.Flags().BoolVar(&exportNoComments, "no-comments", false, "omit ignore reasons from the output")
	exportCmd.Flags().BoolVar(&exportSort, "sort", false, "sort the ignore list by rule code")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "named export template")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	format, opts, err := resolveExportOptions(cmd, a)
	if err != nil {
		return err
	}

	result, err := generate.Generate(a.engine.Rules(), format, opts)
	if err != nil {
		return err
	}

	if exportOutput != "" {
		if err := os.WriteFile(exportOutput, []byte(result.Content), 0o644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		if !isQuiet() {
			fmt.Printf("wrote %s (%d rules ignored)\n", exportOutput, result.IgnoredCount)
		}
		return nil
	}

	fmt.Print(result.Content)
	if isVerbose() {
		fmt.Fprintf(os.Stderr, "%d rules ignored\n", result.IgnoredCount)
	}
	return nil
}

// resolveExportOptions layers template, config defaults and flags, with
// flags winning.
func resolveExportOptions(cmd *cobra.Command, a *app) (generate.Format, generate.Options, error) {
	format := generate.Format(a.cfg.Export.Format)
	opts := generate.Options{
		IncludeComments: a.cfg.Export.IncludeComments,
		SortIgnored:     a.cfg.Export.SortIgnored,
	}

	if exportTemplate != "" {
		loader := templates.NewLoader(a.cfg.Templates.Dir)
		tmpl, err := loader.Get(exportTemplate)
		if err != nil {
			return format, opts, err
		}
		format = generate.Format(tmpl.Format)
		opts.IncludeComments = tmpl.WantsComments()
		opts.SortIgnored = tmpl.SortIgnored
	}

	if cmd.Flags().Changed("format") {
		format = generate.Format(exportFormat)
	}
	if cmd.Flags().Changed("no-comments") {
		opts.IncludeComments = !exportNoComments
	}
	if cmd.Flags().Changed("sort") {
		opts.SortIgnored = exportSort
	}

	return format, opts, nil
}
