// Package shader builds the offline shader command: rendering frames and
// snapshots, and dumping presets and defaults as YAML.
package shader

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	entrypoint "github.com/thinkinrocks/thinkin.rocks/internal/platform/cmd"
	"github.com/thinkinrocks/thinkin.rocks/internal/platform/logging"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader/preview"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader/render"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader/surface"
	"go.uber.org/zap"
)

// Options configures the root command.
type Options struct {
	// Pipeline overrides the software renderer.
	Pipeline render.Pipeline
}

type cli struct {
	pipeline render.Pipeline
	logging  logging.Config
	logger   *zap.Logger
}

// Execute runs the command line in args under telemetry.
func Execute(ctx context.Context, args []string, opts Options) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceShader, func(ctx context.Context) error {
		root := NewRootCommand(opts)
		root.SetArgs(args)
		return root.ExecuteContext(ctx)
	})
}

// NewRootCommand returns the shader command tree.
func NewRootCommand(opts Options) *cobra.Command {
	c := &cli{pipeline: opts.Pipeline, logger: zap.NewNop()}
	root := &cobra.Command{
		Use:           "shader",
		Short:         "Render and inspect the site background shader",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.New(entrypoint.ServiceShader, c.logging)
			if err != nil {
				return err
			}
			c.logger = logger
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.logging.Level, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&c.logging.Format, "log-format", logging.FormatConsole, "log format (json, console)")

	root.AddCommand(c.renderCommand(), c.defaultsCommand(), c.presetsCommand(), c.fitCommand())
	return root
}

func (c *cli) renderPipeline(seed int64) render.Pipeline {
	if c.pipeline != nil {
		return c.pipeline
	}
	opts := []render.Option{render.WithLogger(c.logger.Named("render"))}
	if seed != 0 {
		opts = append(opts, render.WithSeed(seed))
	}
	return render.NewSoftware(opts...)
}

type renderFlags struct {
	preset   string
	config   string
	aspect   string
	out      string
	width    float64
	height   float64
	elapsed  time.Duration
	seed     int64
	snapshot bool
}

func (c *cli) renderCommand() *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame to a PNG file",
		Long: `Render one frame of the shader into a container of the given size.

The surface is fitted to the configured aspect ratio. With --snapshot the
frame is scaled to a 1920 pixel wide export, as the site's snapshot button does.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runRender(cmd, flags)
		},
	}
	cmd.Flags().StringVar(&flags.preset, "preset", "", "preset name (see `shader presets`)")
	cmd.Flags().StringVar(&flags.config, "config", "", "YAML config file; omitted fields keep their defaults")
	cmd.Flags().StringVar(&flags.aspect, "aspect", "", "aspect ratio override (16:9, 4:3, 1:1, free)")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "output PNG path, or - for stdout")
	cmd.Flags().Float64Var(&flags.width, "width", 1280, "container width in pixels")
	cmd.Flags().Float64Var(&flags.height, "height", 720, "container height in pixels")
	cmd.Flags().DurationVar(&flags.elapsed, "elapsed", 0, "animation clock")
	cmd.Flags().Int64Var(&flags.seed, "seed", 0, "noise seed (0 keeps the site's seed)")
	cmd.Flags().BoolVar(&flags.snapshot, "snapshot", false, "scale the frame to the snapshot width")
	cmd.MarkFlagsMutuallyExclusive("preset", "config")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func (c *cli) runRender(cmd *cobra.Command, flags renderFlags) error {
	cfg, err := resolveConfig(flags.preset, flags.config)
	if err != nil {
		return err
	}
	if flags.aspect != "" {
		ratio := shader.ParseAspectRatio(flags.aspect)
		if _, _, ok := ratio.Terms(); !ok && ratio != shader.AspectFree {
			return fmt.Errorf("unsupported aspect ratio %q", flags.aspect)
		}
		cfg.AspectRatio = ratio
	}

	dims := surface.Fit(surface.Size{Width: flags.width, Height: flags.height}, cfg.AspectRatio)
	if dims.Empty() {
		return fmt.Errorf("container %vx%v leaves no surface", flags.width, flags.height)
	}
	frame := image.NewRGBA(image.Rect(0, 0, dims.Width, dims.Height))
	if err := c.renderPipeline(flags.seed).Render(cmd.Context(), render.Frame{Config: cfg, Elapsed: flags.elapsed}, frame); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}

	w, closeOut, err := openOutput(cmd.OutOrStdout(), flags.out)
	if err != nil {
		return err
	}
	if flags.snapshot {
		_, err = preview.Export(frame, w)
	} else {
		err = png.Encode(w, frame)
	}
	if closeErr := closeOut(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", flags.out, err)
	}
	c.logger.Info("rendered frame",
		zap.String("out", flags.out),
		zap.Int("width", dims.Width),
		zap.Int("height", dims.Height),
		zap.Bool("snapshot", flags.snapshot),
	)
	return nil
}

func (c *cli) defaultsCommand() *cobra.Command {
	var preset string
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the default configuration, or a preset, as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(preset, "")
			if err != nil {
				return err
			}
			return shader.EncodeYAML(cmd.OutOrStdout(), cfg)
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "print this preset instead of the defaults")
	return cmd
}

func (c *cli) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the named presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range shader.PresetNames() {
				preset, _ := shader.LookupPreset(name)
				fmt.Fprintf(tw, "%s\t%s\n", preset.Name, preset.Description)
			}
			return tw.Flush()
		},
	}
}

func (c *cli) fitCommand() *cobra.Command {
	var aspect string
	cmd := &cobra.Command{
		Use:   "fit WIDTH HEIGHT",
		Short: "Print the surface size for a container and aspect ratio",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var container surface.Size
			if _, err := fmt.Sscan(args[0], &container.Width); err != nil {
				return fmt.Errorf("parse width %q: %w", args[0], err)
			}
			if _, err := fmt.Sscan(args[1], &container.Height); err != nil {
				return fmt.Errorf("parse height %q: %w", args[1], err)
			}
			dims := surface.Fit(container, shader.ParseAspectRatio(aspect))
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%dx%d\n", dims.Width, dims.Height)
			return err
		},
	}
	cmd.Flags().StringVar(&aspect, "aspect", string(shader.Aspect16x9), "aspect ratio (16:9, 4:3, 1:1, free)")
	return cmd
}

func resolveConfig(preset, path string) (shader.Config, error) {
	switch {
	case preset != "" && path != "":
		return shader.Config{}, errors.New("--preset and --config are mutually exclusive")
	case preset != "":
		p, ok := shader.LookupPreset(preset)
		if !ok {
			return shader.Config{}, fmt.Errorf("unknown preset %q (have %s)", preset, strings.Join(shader.PresetNames(), ", "))
		}
		return p.Config, nil
	case path != "":
		return shader.LoadYAMLFile(path)
	default:
		return shader.Defaults(), nil
	}
}

func openOutput(stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, f.Close, nil
}
