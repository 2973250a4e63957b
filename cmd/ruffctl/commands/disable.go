package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var disableCmd = &cobra.Command{
	Use:   "disable CODE...",
	Short: "Disable one or more rules",
	Long: `Disable rules by code, optionally recording why.

The reason shows up as a comment next to the rule in exported
configuration.

Examples:
  ruffctl disable E501
  ruffctl disable E501 --reason "legacy line lengths"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDisable,
}

var disableReason string

func init() {
	rootCmd.AddCommand(disableCmd)

	disableCmd.Flags().StringVarP(&disableReason, "reason", "r", "", "why this rule is being disabled")
}

func runDisable(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	for _, code := range args {
		if a.engine.Rule(code) == nil {
			return fmt.Errorf("unknown rule code: %s", code)
		}
		a.engine.SetRuleEnabled(cmd.Context(), code, false, disableReason)
		if !isQuiet() {
			fmt.Printf("disabled %s\n", code)
		}
	}
	return nil
}
