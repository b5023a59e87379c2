package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/datasettag/internal/source"
	"github.com/ivlev/datasettag/internal/thumbnail"
)

type thumbsOptions struct {
	Out  string
	Size int
}

func newThumbsCmd(a *app) *cobra.Command {
	opts := &thumbsOptions{}
	cmd := &cobra.Command{
		Use:   "thumbs <dir>",
		Short: "Write PNG previews of every image in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			images, err := source.Scan(args[0])
			if err != nil {
				return err
			}
			size := opts.Size
			if size <= 0 {
				size = a.cfg.Application.ThumbnailSize
			}
			outDir := opts.Out
			if outDir == "" {
				outDir = filepath.Join(args[0], "thumbs")
			}

			start := time.Now()
			gen := thumbnail.New(size, a.workers(), a.logger)
			thumbs, err := gen.Generate(cmd.Context(), images)
			if err != nil {
				return err
			}
			paths, err := thumbnail.WritePNG(outDir, thumbs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+] %d/%d previews in %s in %v\n",
				len(paths), len(images), outDir, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "Output directory (default <dir>/thumbs)")
	cmd.Flags().IntVarP(&opts.Size, "size", "s", 0, "Preview box size in pixels (default from config)")
	return cmd
}
