package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ivlev/datasettag/internal/caption"
	"github.com/ivlev/datasettag/internal/store"
)

func newRenderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render <image>",
		Short: "Print the caption stored for an image without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imagePath := args[0]
			m, err := store.LoadManifest(filepath.Dir(imagePath))
			if err != nil {
				return err
			}
			info, ok := store.Lookup(m, store.ImageName(imagePath))
			if !ok {
				return fmt.Errorf("no stored tags for %s", store.ImageName(imagePath))
			}
			groups, err := info.Groups()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), caption.RenderGroups(info.Trigger(), groups))
			return nil
		},
	}
}
