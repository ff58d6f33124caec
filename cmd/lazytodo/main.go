// Package main is the entry point for the lazytodo application.
package main

import (
	"context"
	"os"

	"github.com/chmouel/lazytodo/internal/bootstrap"
	"github.com/chmouel/lazytodo/internal/buildinfo"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	os.Exit(bootstrap.Run(context.Background(), os.Args, os.Stdout, os.Stderr))
}
