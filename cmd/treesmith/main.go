package main

import (
	"fmt"
	"os"

	"github.com/treesmith/treesmith/internal/cli"
	"github.com/treesmith/treesmith/pkg/style"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
