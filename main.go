// Package main is the entry point for the clawctl command-line tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/openclaw/clawctl/cmd"
)

func main() {
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
