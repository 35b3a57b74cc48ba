// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gviegas/paraforge"
	"github.com/gviegas/paraforge/internal/config"
)

func newBuildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <generator> [params...]",
		Short: "Run a generator and write the resulting model",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.build(cmd, args[0], args[1:])
		},
	}
	f := cmd.Flags()
	f.String("format", config.FormatGLB, "output format (glb or json)")
	f.Bool("pretty", false, "indent JSON output")
	f.StringP("output", "o", "", `output file ("-" for stdout)`)
	return cmd
}

func (a *app) build(cmd *cobra.Command, name string, params []string) error {
	ctx := paraforge.New(
		paraforge.WithLogger(a.log),
		paraforge.WithAsset(a.cfg.Asset.Generator, a.cfg.Asset.Copyright))
	if err := ctx.Init(); err != nil {
		return err
	}
	if _, err := ctx.Build(name, params); err != nil {
		a.log.Error("build failed", zap.String("generator", name), zap.Stringer("code", paraforge.Code(err)), zap.Error(err))
		return err
	}

	var (
		b   []byte
		err error
		ext string
	)
	switch a.cfg.Output.Format {
	case config.FormatJSON:
		b, err = ctx.SerializeJSON(a.cfg.Output.Pretty)
		ext = ".gltf"
	default:
		b, err = ctx.Serialize()
		ext = ".glb"
	}
	if err != nil {
		return err
	}

	path := a.cfg.Output.Path
	switch path {
	case "-":
		_, err = cmd.OutOrStdout().Write(b)
		return err
	case "":
		path = name + ext
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return err
	}
	a.log.Info("model written", zap.String("generator", name), zap.String("path", path), zap.Int("bytes", len(b)))
	return nil
}
