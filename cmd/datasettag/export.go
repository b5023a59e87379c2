package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/datasettag/internal/source"
	"github.com/ivlev/datasettag/internal/store"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Rewrite every caption file of a directory from its manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			src, err := source.NewImageSource(dir)
			if err != nil {
				return err
			}
			m, err := store.LoadManifest(dir)
			if err != nil {
				return err
			}

			res, err := store.ExportCaptions(cmd.Context(), m, src.NameIndex(), a.workers(), a.logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "[+] Captions written: %d\n", len(res.Written))
			for _, name := range res.Missing {
				fmt.Fprintf(out, "[!] no image for %s\n", name)
			}
			for _, name := range res.Invalid {
				fmt.Fprintf(out, "[!] skipped %s: unknown category\n", name)
			}
			return nil
		},
	}
}
