// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gviegas/paraforge/internal/config"
	"github.com/gviegas/paraforge/internal/logger"
)

// app holds state shared by the subcommands.
type app struct {
	configPath string
	cfg        *config.Config
	log        *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}
	cmd := &cobra.Command{
		Use:          "paraforge",
		Short:        "Generate 3-D models as glTF",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}
	f := cmd.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "config file (YAML or TOML)")
	f.String("log-level", "", "log level (debug, info, warn, error)")
	f.String("log-file", "", "also log to this file, rotated")

	cmd.AddCommand(newBuildCmd(a), newListCmd(), newInspectCmd(a), newConfigCmd(a))
	return cmd
}

// setup loads the configuration, applies command line
// overrides and creates the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("log-level", &cfg.Logging.Level)
	override("log-file", &cfg.Logging.File)
	override("format", &cfg.Output.Format)
	override("output", &cfg.Output.Path)
	if flags.Changed("pretty") {
		cfg.Output.Pretty, _ = flags.GetBool("pretty")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.FileConfig(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}
