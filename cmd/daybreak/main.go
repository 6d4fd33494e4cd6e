// Package main is the single-binary entrypoint for Daybreak.
package main

import "github.com/daybreak-app/daybreak/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
