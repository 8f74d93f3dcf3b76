package main

import (
	"os"

	"github.com/raphi011/freshen/internal/cli"
	"github.com/raphi011/freshen/internal/runner"
)

// Version information - set by goreleaser
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(cli.Execute(runner.Freshen, cli.BuildInfo{Version: version, Commit: commit, Date: date}))
}
