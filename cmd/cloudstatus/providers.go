package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/cloudstatus"
)

// providersCmd lists the fixed provider table.
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the providers that can be checked",
	Long: `List the provider ids accepted as arguments, in the order they are
checked when no ids are given, with the status endpoint polled for each.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tURL")
		for _, p := range cloudstatus.Providers() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID(), p.Name(), p.URL())
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
