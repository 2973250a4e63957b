package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle CODE...",
	Short: "Flip one or more rules between enabled and disabled",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	for _, code := range args {
		r := a.engine.Rule(code)
		if r == nil {
			return fmt.Errorf("unknown rule code: %s", code)
		}
		a.engine.ToggleRule(cmd.Context(), code)
		if !isQuiet() {
			state := "disabled"
			if r.Enabled {
				state = "enabled"
			}
			fmt.Printf("%s %s\n", state, code)
		}
	}
	return nil
}
