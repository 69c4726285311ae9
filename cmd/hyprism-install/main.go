package main

import (
	"context"
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

// Usage: hyprism-install [install_directory]
func main() {
	if err := runInstall(context.Background(), os.Args[1:], os.Stdout, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
