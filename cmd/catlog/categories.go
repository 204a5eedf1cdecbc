package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kbukum/catlog/category"
)

func newCategoriesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the declared categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := category.All()
			if asJSON {
				metas := make([]category.Meta, len(all))
				for i, c := range all {
					metas[i] = category.MetaFor(c)
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(metas)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTAG\tNAME\tCOLOR")
			for _, c := range all {
				m := category.MetaFor(c)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ID, m.Tag, m.Name, m.Color)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
