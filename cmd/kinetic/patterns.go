package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"kinetic-table/pkg/core"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List available patterns and their default parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		size := core.Size{Rows: cfg.Table.Rows, Cols: cfg.Table.Cols}
		heights := core.Range{Min: cfg.Table.MinHeight, Max: cfg.Table.MaxHeight}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range core.PatternNames() {
			fmt.Fprintf(w, "%s\n", name)
			p := core.Patterns()[name](size, heights, nil)
			provider, ok := p.(core.ParameterProvider)
			if !ok {
				fmt.Fprintf(w, "  (no parameters)\n")
				continue
			}
			for _, group := range provider.Parameters().Groups {
				for _, param := range group.Params {
					fmt.Fprintf(w, "  %s\t%s\t%s\n", param.Key, param.Value, param.Label)
				}
				if group.Summary != "" {
					fmt.Fprintf(w, "  # %s\n", group.Summary)
				}
			}
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}
