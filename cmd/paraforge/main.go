// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Paraforge generates 3-D models and writes them as glTF.
//
// Usage:
//
//	paraforge build <generator> [params...] [--format glb|json] [--pretty] [-o file]
//	paraforge list
//	paraforge inspect <file.glb>
//	paraforge config [file]
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
