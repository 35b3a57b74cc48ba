// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gviegas/paraforge/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config [file]",
		Short: "Write the effective configuration to a file",
		Long: "Write the configuration in effect (defaults, config file and flags)\n" +
			"to file, as YAML or TOML by extension. The default file is\n" +
			"paraforge.yaml in the user configuration directory.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(config.Dir(), "paraforge.yaml")
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(a.cfg, path); err != nil {
				return err
			}
			a.log.Info("config written", zap.String("path", path))
			_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}
