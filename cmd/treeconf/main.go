// FILE: lixenwraith/treeconfig/cmd/treeconf/main.go
// Package main is the entry point for the treeconf CLI, which loads
// configuration files into a tree and queries or re-encodes it.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		os.Exit(1)
	}
}
