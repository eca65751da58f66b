package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pevans/newbooks/layout"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List the results page layouts newbooks understands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, name := range layout.Names() {
			d, err := layout.Lookup(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (v%d)\n", d.Name, d.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  blocks: %s\n", formatSteps(d.Blocks))
			fmt.Fprintf(cmd.OutOrStdout(), "  cells:  %s\n", formatSteps(d.Cells))
		}
		return nil
	},
}

// formatSteps renders steps as a path such as "center[0] > tr[*]".
func formatSteps(steps []layout.Step) string {
	s := ""
	for i, step := range steps {
		if i > 0 {
			s += " > "
		}
		if step.Index == layout.All {
			s += step.Tag + "[*]"
		} else {
			s += fmt.Sprintf("%s[%d]", step.Tag, step.Index)
		}
	}
	return s
}

func init() {
	rootCmd.AddCommand(layoutsCmd)
}
