package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all stored rule preferences",
	Long: `Clear all stored rule preferences, returning every rule to its
default enabled state. Requires --yes.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

var resetYes bool

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm clearing all preferences")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetYes {
		return fmt.Errorf("refusing to clear preferences without --yes")
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	// Both persisted records go together; either alone can rebuild state.
	if err := a.prefs.ClearUserSettings(); err != nil {
		return fmt.Errorf("clearing settings: %w", err)
	}
	if err := a.prefs.ClearRulePreferences(); err != nil {
		return fmt.Errorf("clearing rule preferences: %w", err)
	}

	if !isQuiet() {
		fmt.Println("preferences cleared; all rules enabled")
	}
	return nil
}
