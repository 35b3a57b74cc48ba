// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gviegas/paraforge/gltf"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.glb>",
		Short: "Validate a binary glTF file and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.inspect(cmd, args[0])
		},
	}
}

func (a *app) inspect(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if !gltf.IsGLB(f) {
		return fmt.Errorf("%s: %w", path, gltf.ErrNotGLB)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	doc, bin, err := gltf.DecodeGLB(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := doc.Check(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	a.log.Debug("inspected", zap.String("path", path))

	prims := 0
	for _, m := range doc.Meshes {
		prims += len(m.Primitives)
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "generator:   %s\n", doc.Asset.Generator)
	fmt.Fprintf(w, "scenes:      %d\n", len(doc.Scenes))
	fmt.Fprintf(w, "nodes:       %d\n", len(doc.Nodes))
	fmt.Fprintf(w, "meshes:      %d\n", len(doc.Meshes))
	fmt.Fprintf(w, "primitives:  %d\n", prims)
	fmt.Fprintf(w, "materials:   %d\n", len(doc.Materials))
	fmt.Fprintf(w, "accessors:   %d\n", len(doc.Accessors))
	fmt.Fprintf(w, "binary:      %d bytes\n", len(bin))
	return nil
}
