package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Bulk-toggle every rule in a category",
}

var categoryEnableCmd = &cobra.Command{
	Use:   "enable ID",
	Short: "Enable every rule in the category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCategoryToggle(cmd, args[0], true)
	},
}

var categoryDisableCmd = &cobra.Command{
	Use:   "disable ID",
	Short: "Disable every rule in the category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCategoryToggle(cmd, args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryEnableCmd)
	categoryCmd.AddCommand(categoryDisableCmd)
}

func runCategoryToggle(cmd *cobra.Command, id string, enabled bool) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	c := a.engine.Category(id)
	if c == nil {
		return fmt.Errorf("unknown category: %s", id)
	}

	a.engine.ToggleCategory(cmd.Context(), id, enabled)

	if !isQuiet() {
		c = a.engine.Category(id)
		state := "disabled"
		if enabled {
			state = "enabled"
		}
		fmt.Printf("%s %d rules in %s (%d/%d enabled)\n", state, c.RuleCount, id, c.EnabledCount, c.RuleCount)
	}
	return nil
}
