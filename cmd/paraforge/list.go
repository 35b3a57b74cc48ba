// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gviegas/paraforge/internal/models"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available generators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, gen := range models.Generators() {
				if _, err := fmt.Fprintf(w, "%-22s %s\n", gen.Name, gen.Doc); err != nil {
					return err
				}
				if len(gen.Params) > 0 {
					fmt.Fprintf(w, "%-22s usage: %s\n", "", gen.Usage())
				}
			}
			return nil
		},
	}
}
