// Package main is the entry point for the dashboard CLI binary.
package main

import (
	"os"

	"dash-demo/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
