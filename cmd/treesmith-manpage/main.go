package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/treesmith/treesmith/internal/cli"
	"github.com/treesmith/treesmith/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "TREESMITH",
		Section: "1",
		Source:  "treesmith " + version.Version,
		Manual:  "treesmith manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
