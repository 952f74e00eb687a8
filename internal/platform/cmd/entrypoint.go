// Package cmd starts the thinkin.rocks binaries: the site server and the
// offline shader renderer. THINKIN_ROCKS_* variables are read before flags so
// a flag always wins, and each run loop executes inside a tracing session
// named for the binary.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/thinkinrocks/thinkin.rocks/internal/platform/config"
	"github.com/thinkinrocks/thinkin.rocks/internal/platform/otel"
	"go.uber.org/zap"
)

// telemetryFlushTimeout bounds the span flush after a run loop returns.
const telemetryFlushTimeout = 5 * time.Second

// Binary names. They double as the OTLP service name and the "service" log field.
const (
	ServiceSite   = "site"
	ServiceShader = "shader"
)

func knownService(name string) bool {
	return name == ServiceSite || name == ServiceShader
}

// ParseConfig fills cfg from THINKIN_ROCKS_* variables and envDefault tags.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs applies command-line flags over the environment values already in
// the flag defaults.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry runs one thinkin.rocks binary with tracing installed and
// flushes pending spans once run returns.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	if !knownService(service) {
		return fmt.Errorf("unknown service %q", service)
	}
	if run == nil {
		return errors.New("run function is required")
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return fmt.Errorf("setup telemetry for %s: %w", service, err)
	}
	logger := zap.L().With(zap.String("service", service))
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			logger.Warn("flush traces", zap.Error(err))
		}
	}()

	logger.Debug("starting")
	err = run(ctx)
	if err != nil {
		logger.Debug("stopped", zap.Error(err))
	}
	return err
}
