package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/datasettag/internal/tags"
	"github.com/ivlev/datasettag/internal/view"
)

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories in caption order with their catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			r := view.New(out, a.cfg.Application.NoColor)
			cat := a.buildCatalog()
			for _, c := range tags.All() {
				fmt.Fprintf(out, "%2d  %s\n", tags.Rank(c), r.Catalog(c, cat.Available(c)))
			}
			return nil
		},
	}
}
