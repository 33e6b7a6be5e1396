package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grcflow/notifcomposer/internal/domain"
	"github.com/grcflow/notifcomposer/internal/service"
	"github.com/grcflow/notifcomposer/pkg/variables"
)

func newCatalogCmd(c *cliContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the variables a variable block can reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(domain.CatalogResponse{
					Version: variables.CatalogVersion,
					Entries: variables.Catalog(),
				})
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tLABEL")
			for _, e := range variables.Catalog() {
				fmt.Fprintf(tw, "%s\t%s\n", e.Key, e.Label)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\ncatalog version %d, sample entities: %v\n", variables.CatalogVersion, service.SampleEntityTypes())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	return cmd
}
