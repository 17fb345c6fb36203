// Package main is the bbgen command line: roll guns, loot, elemental
// damage and character sheets, or serve the loot terminal and HTTP API.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
