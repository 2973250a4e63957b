package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ruffctl/ruffctl/internal/catalog"
	"github.com/ruffctl/ruffctl/internal/engine"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List rules matching the given filters",
	Long: `List rules from the catalog together with their current state.

All filters combine with AND semantics.

Examples:
  # All rules in a category
  ruffctl list --category pycodestyle

  # Disabled rules only
  ruffctl list --status disabled

  # Fixable stable rules mentioning "import"
  ruffctl list --search import --legend stable --fixable true`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listCategory  string
	listSearch    string
	listStatus    []string
	listLegend    []string
	listFixable   string
	listEcosystem []string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listCategory, "category", "", "only rules in this category")
	listCmd.Flags().StringVar(&listSearch, "search", "", "free-text search over code, name and description")
	listCmd.Flags().StringSliceVar(&listStatus, "status", nil, "filter by state: enabled, disabled")
	listCmd.Flags().StringSliceVar(&listLegend, "legend", nil, "filter by legend status: stable, preview, deprecated")
	listCmd.Flags().StringVar(&listFixable, "fixable", "", "filter by fixability: true or false")
	listCmd.Flags().StringSliceVar(&listEcosystem, "ecosystem", nil, "filter by ecosystem tag")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	opts, err := buildFilterOptions()
	if err != nil {
		return err
	}

	// Only touch the persisted selection when the flag was given, so a
	// plain list does not clobber the remembered category.
	if cmd.Flags().Changed("category") {
		a.engine.SetSelectedCategory(listCategory)
	} else {
		a.engine.ResetFilters()
	}
	a.engine.SetSearchQuery(listSearch)
	a.engine.SetFilterOptions(opts)

	rules := a.engine.GetFilteredRules()
	if len(rules) == 0 {
		fmt.Println("No rules match the given filters.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tCATEGORY\tSTATE\tLEGEND\tREASON")
	for _, r := range rules {
		state := "enabled"
		if !r.Enabled {
			state = "disabled"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Code, r.Name, r.Category, state, r.Legend.Status, r.IgnoreReason)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d of %d rules shown\n", len(rules), len(a.engine.Rules()))
	return nil
}

// buildFilterOptions translates the list flags into engine filter options.
func buildFilterOptions() (engine.FilterOptions, error) {
	opts := engine.FilterOptions{
		Status:    listStatus,
		Ecosystem: listEcosystem,
	}

	for _, s := range listStatus {
		if s != engine.StatusEnabled && s != engine.StatusDisabled {
			return opts, fmt.Errorf("invalid --status value %q, must be enabled or disabled", s)
		}
	}

	for _, l := range listLegend {
		status := catalog.LegendStatus(l)
		switch status {
		case catalog.StatusStable, catalog.StatusPreview, catalog.StatusDeprecated:
			opts.Legend = append(opts.Legend, status)
		default:
			return opts, fmt.Errorf("invalid --legend value %q, must be stable, preview or deprecated", l)
		}
	}

	switch listFixable {
	case "":
	case "true":
		v := true
		opts.Fixable = &v
	case "false":
		v := false
		opts.Fixable = &v
	default:
		return opts, fmt.Errorf("invalid --fixable value %q, must be true or false", listFixable)
	}

	return opts, nil
}
