package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tbxark/intentagent/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the configured intents and their slots",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(conf)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, in := range cat.Intents() {
			fmt.Fprintf(out, "## %s (%s)\n", in.Label, in.Tool.Name)
			fmt.Fprintf(out, "keywords: %s\n", strings.Join(in.Keywords, ", "))
			if in.Hint != "" {
				fmt.Fprintf(out, "hint: %s\n", in.Hint)
			}
			if table := types.FormatSlots(in.Tool); table != "" {
				fmt.Fprintf(out, "\n%s\n", table)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}
