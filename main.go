package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/iamfatinilham/nuxcraft-pycher/cmd"
)

// set by goreleaser
var (
	version string
	commit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if version != "" {
		cmd.Version = version
	}
	cmd.Commit = commit
	code := cmd.Execute(ctx)
	stop()
	os.Exit(code)
}
