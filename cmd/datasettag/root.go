package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ivlev/datasettag/internal/catalog"
	"github.com/ivlev/datasettag/internal/config"
	"github.com/ivlev/datasettag/internal/system"
)

type rootOptions struct {
	ConfigPath string
	LogLevel   string
	Workers    int
	NoColor    bool
}

// app holds what every subcommand needs after bootstrap.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "datasettag",
		Short:         "Tag images of a training dataset and write caption files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.bootstrap(cmd, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file path (default: $DATASETTAG_CONFIG or datasettag.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVarP(&opts.Workers, "workers", "w", 0, "Worker count (0 = number of CPU cores)")
	rootCmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newSessionCmd(a),
		newRenderCmd(a),
		newSaveCmd(a),
		newExportCmd(a),
		newThumbsCmd(a),
		newCategoriesCmd(a),
	)

	return rootCmd
}

func (a *app) bootstrap(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load(config.ResolvePath(opts.ConfigPath))
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.Workers > 0 {
		cfg.Application.Workers = opts.Workers
	}
	if opts.NoColor {
		cfg.Application.NoColor = true
	}

	logger, err := system.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger.With(zap.String("cmd", cmd.Name()))
	a.logger.Debug("config loaded", zap.String("path", cfg.Path))
	return nil
}

func (a *app) workers() int {
	return system.DefaultWorkers(a.cfg.Application.Workers)
}

// buildCatalog builds the tag catalog from the config. Unknown category names
// in the file are logged and skipped.
func (a *app) buildCatalog() *catalog.Catalog {
	lists, err := a.cfg.Categories()
	if err != nil {
		a.logger.Warn("config has invalid categories", zap.Error(err))
	}
	return catalog.New(lists)
}
