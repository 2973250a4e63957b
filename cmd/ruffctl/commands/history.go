package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ruffctl/ruffctl/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent rule preference changes",
	Long: `Show the change journal, newest first.

Examples:
  # Last 20 changes
  ruffctl history

  # Changes to one rule
  ruffctl history --rule E501`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var (
	historyLimit int
	historyRule  string
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of changes to show")
	historyCmd.Flags().StringVar(&historyRule, "rule", "", "only changes to this rule code")
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if a.journal == nil {
		return fmt.Errorf("history is disabled (see history.enabled in config)")
	}

	records, err := fetchHistory(cmd, a)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No changes recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tRULE\tSTATE\tREASON")
	for _, rec := range records {
		state := "enabled"
		if !rec.Enabled {
			state = "disabled"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			rec.ChangedAt.Local().Format("2006-01-02 15:04:05"), rec.RuleCode, state, rec.IgnoreReason)
	}
	return w.Flush()
}

func fetchHistory(cmd *cobra.Command, a *app) ([]history.ChangeRecord, error) {
	if historyRule != "" {
		return a.journal.ForRule(cmd.Context(), historyRule, historyLimit)
	}
	return a.journal.Recent(cmd.Context(), historyLimit)
}
