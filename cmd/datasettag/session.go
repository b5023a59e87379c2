package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ivlev/datasettag/internal/session"
	"github.com/ivlev/datasettag/internal/shell"
	"github.com/ivlev/datasettag/internal/source"
	"github.com/ivlev/datasettag/internal/tags"
	"github.com/ivlev/datasettag/internal/thumbnail"
	"github.com/ivlev/datasettag/internal/view"
)

func newSessionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "session <dir>",
		Short: "Interactive tagging shell over an image directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := source.NewImageSource(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.cfg.Application.FirstRun {
				a.cfg.Application.FirstRun = false
				if err := a.cfg.Save(); err != nil {
					a.logger.Warn("config not saved", zap.Error(err))
				} else {
					fmt.Fprintf(out, "[*] Created config file %s\n", a.cfg.Path)
				}
			}

			sh := shell.New(shell.Options{
				Source:  src,
				Session: session.New(a.buildCatalog(), a.logger),
				View:    view.New(out, a.cfg.Application.NoColor),
				Out:     out,
				Logger:  a.logger,
				Thumbs:  thumbnail.New(a.cfg.Application.ThumbnailSize, a.workers(), a.logger),
				PersistCatalog: func(lists map[tags.Category][]string) error {
					a.cfg.SetCategories(lists)
					return a.cfg.Save()
				},
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return sh.Run(ctx, cmd.InOrStdin())
		},
	}
}
