// Package main renders and inspects the site background shader offline.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	shadercmd "github.com/thinkinrocks/thinkin.rocks/internal/cmd/shader"
	"github.com/thinkinrocks/thinkin.rocks/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := shadercmd.Execute(ctx, os.Args[1:], shadercmd.Options{})
	stop()
	config.ExitOnError("shader", err)
}
