// Package main is the single-binary entrypoint for LifeForge.
// LifeForge is a self-hosted personal OS — one binary, one SQLite file.
package main

import "github.com/lifeforge/lifeforge/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
