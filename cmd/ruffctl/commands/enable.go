package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var enableCmd = &cobra.Command{
	Use:   "enable CODE...",
	Short: "Enable one or more rules",
	Long: `Enable rules by code. Enabling a rule clears any recorded ignore
reason.

Examples:
  ruffctl enable E501
  ruffctl enable E501 W503 F401`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEnable,
}

func init() {
	rootCmd.AddCommand(enableCmd)
}

func runEnable(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	for _, code := range args {
		if a.engine.Rule(code) == nil {
			return fmt.Errorf("unknown rule code: %s", code)
		}
		a.engine.SetRuleEnabled(cmd.Context(), code, true, "")
		if !isQuiet() {
			fmt.Printf("enabled %s\n", code)
		}
	}
	return nil
}
