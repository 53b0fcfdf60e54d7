// Package main provides the entry point for the storefinder CLI.
package main

import (
	"os"

	"storefinder/cmd/storefinder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
