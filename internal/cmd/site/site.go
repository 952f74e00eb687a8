// Package site parses site command flags and starts the public website.
package site

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	entrypoint "github.com/thinkinrocks/thinkin.rocks/internal/platform/cmd"
	"github.com/thinkinrocks/thinkin.rocks/internal/platform/logging"
	siteservice "github.com/thinkinrocks/thinkin.rocks/internal/services/site"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/content"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/integration/luma"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/storage/sqlite"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config holds site command configuration.
type Config struct {
	HTTPAddr           string `env:"THINKIN_ROCKS_SITE_HTTP_ADDR"       envDefault:"localhost:8080"`
	DBPath             string `env:"THINKIN_ROCKS_SITE_DB_PATH"         envDefault:"data/site.db"`
	ContentDir         string `env:"THINKIN_ROCKS_SITE_CONTENT_DIR"`
	ShaderDefaultsPath string `env:"THINKIN_ROCKS_SITE_SHADER_DEFAULTS"`
	MCPEnabled         bool   `env:"THINKIN_ROCKS_SITE_MCP_ENABLED"     envDefault:"false"`
	Luma               luma.Config
	Logging            logging.Config
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "site HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "application SQLite database path")
	fs.StringVar(&cfg.ContentDir, "content-dir", cfg.ContentDir, "directory with hardware.yaml and log.yaml, watched for changes (default: embedded content)")
	fs.StringVar(&cfg.ShaderDefaultsPath, "shader-defaults", cfg.ShaderDefaultsPath, "YAML file overriding the shader defaults")
	fs.BoolVar(&cfg.MCPEnabled, "mcp", cfg.MCPEnabled, "serve shader MCP tools at /mcp")
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Logging.Format, "log-format", cfg.Logging.Format, "log format (json, console)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run opens site dependencies and serves HTTP until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(entrypoint.ServiceSite, cfg.Logging)
	if err != nil {
		return err
	}
	restore := logging.Install(logger)
	defer restore()

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSite, func(ctx context.Context) error {
		return serve(ctx, cfg, logger)
	})
}

func serve(ctx context.Context, cfg Config, logger *zap.Logger) error {
	store, err := openStore(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close application store", zap.Error(err))
		}
	}()

	defaults := shader.Defaults()
	if path := strings.TrimSpace(cfg.ShaderDefaultsPath); path != "" {
		defaults, err = shader.LoadYAMLFile(path)
		if err != nil {
			return err
		}
		logger.Info("loaded shader defaults", zap.String("path", path))
	}

	source, watch, err := openContent(cfg.ContentDir, logger.Named("content"))
	if err != nil {
		return err
	}

	server, err := siteservice.NewServer(ctx, siteservice.Config{
		HTTPAddr:     cfg.HTTPAddr,
		Logger:       logger,
		Applications: store,
		Events:       luma.NewClient(cfg.Luma, luma.WithLogger(logger.Named("luma"))),
		Content:      source,
		Shader:       shader.NewStoreWithDefaults(defaults),
		MCPEnabled:   cfg.MCPEnabled,
	})
	if err != nil {
		return fmt.Errorf("build site server: %w", err)
	}
	defer server.Close()

	group, groupCtx := errgroup.WithContext(ctx)
	if watch {
		group.Go(func() error {
			return source.Watch(groupCtx)
		})
	}
	group.Go(func() error {
		if err := server.ListenAndServe(groupCtx); err != nil {
			return fmt.Errorf("serve site: %w", err)
		}
		return nil
	})
	return group.Wait()
}

func openStore(ctx context.Context, path string) (*sqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	return sqlite.Open(ctx, path)
}

// openContent returns the embedded snapshot, or a directory source that
// should be watched when dir is set.
func openContent(dir string, logger *zap.Logger) (*content.Source, bool, error) {
	if dir = strings.TrimSpace(dir); dir == "" {
		source, err := content.NewSource(logger)
		return source, false, err
	}
	source, err := content.NewDirSource(dir, logger)
	if err != nil {
		return nil, false, err
	}
	return source, true, nil
}
