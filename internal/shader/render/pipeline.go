// Package render draws shader configurations into RGBA frames.
//
// Pipeline is the seam the preview renderer drives. Software is the bundled
// CPU implementation; it composes the layers in a fixed order: base (image
// texture or stripes) and simplex noise inside the flow-field displacement,
// then dither, then chromatic aberration.
package render

import (
	"context"
	"errors"
	"image"
	"math"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Frame is one render request.
type Frame struct {
	Config shader.Config
	// Elapsed is the animation clock.
	Elapsed time.Duration
}

// Pipeline renders frames into caller-owned buffers.
type Pipeline interface {
	Render(ctx context.Context, frame Frame, dst *image.RGBA) error
}

// Option configures a Software pipeline.
type Option func(*Software)

// WithLogger sets the logger used for recoverable layer failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Software) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTextureLoader sets the loader used for image textures.
func WithTextureLoader(loader *TextureLoader) Option {
	return func(s *Software) {
		if loader != nil {
			s.textures = loader
		}
	}
}

// WithSeed sets the noise seed.
func WithSeed(seed int64) Option {
	return func(s *Software) {
		s.flowNoise = opensimplex.NewNormalized(seed)
		s.layerNoise = opensimplex.NewNormalized(seed + 1)
	}
}

// Software renders frames on the CPU.
type Software struct {
	logger     *zap.Logger
	textures   *TextureLoader
	flowNoise  opensimplex.Noise
	layerNoise opensimplex.Noise
	workers    int
}

// NewSoftware returns a CPU pipeline.
func NewSoftware(opts ...Option) *Software {
	s := &Software{
		logger:     zap.NewNop(),
		textures:   NewTextureLoader(nil),
		flowNoise:  opensimplex.NewNormalized(7),
		layerNoise: opensimplex.NewNormalized(8),
		workers:    runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

var errNilBuffer = errors.New("render buffer is required")

// Render draws frame into dst. An empty dst is a no-op.
func (s *Software) Render(ctx context.Context, frame Frame, dst *image.RGBA) error {
	if dst == nil {
		return errNilBuffer
	}
	bounds := dst.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil
	}

	ctx, span := otel.Tracer("thinkin.rocks/shader/render").Start(ctx, "render.frame")
	defer span.End()
	span.SetAttributes(
		attribute.Int("frame.width", width),
		attribute.Int("frame.height", height),
		attribute.String("frame.base_layer", frame.Config.BaseLayer()),
	)

	params := resolveParams(frame.Config)
	var texture *image.RGBA
	if params.imageURL != "" {
		loaded, err := s.textures.Load(ctx, params.imageURL)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			s.logger.Warn("image texture unavailable, drawing stripes", zap.String("url", truncateURL(params.imageURL)), zap.Error(err))
		} else {
			texture = loaded
		}
	}

	seconds := frame.Elapsed.Seconds()
	composed := make([]mgl64.Vec3, width*height)
	if err := s.parallelRows(ctx, height, func(y int) {
		for x := 0; x < width; x++ {
			composed[y*width+x] = s.shade(params, texture, x, y, width, height, seconds)
		}
	}); err != nil {
		return err
	}

	if params.dither.visible {
		dithered := make([]mgl64.Vec3, len(composed))
		frameIndex := int(seconds * 24)
		if err := s.parallelRows(ctx, height, func(y int) {
			for x := 0; x < width; x++ {
				dithered[y*width+x] = applyDither(params.dither, composed, width, height, x, y, frameIndex)
			}
		}); err != nil {
			return err
		}
		composed = dithered
	}

	offset := aberrationOffset(params.aberration, width, height)
	return s.parallelRows(ctx, height, func(y int) {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+width*4]
		for x := 0; x < width; x++ {
			c := sampleAberration(composed, width, height, x, y, offset)
			row[x*4+0] = toByte(c.X())
			row[x*4+1] = toByte(c.Y())
			row[x*4+2] = toByte(c.Z())
			row[x*4+3] = 0xff
		}
	})
}

func (s *Software) parallelRows(ctx context.Context, height int, fn func(y int)) error {
	workers := s.workers
	if workers < 1 {
		workers = 1
	}
	band := (height + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < height; start += band {
		start := start
		end := min(start+band, height)
		g.Go(func() error {
			for y := start; y < end; y++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				fn(y)
			}
			return nil
		})
	}
	return g.Wait()
}

// shade returns the flow-displaced base and noise composite for one pixel.
func (s *Software) shade(p params, texture *image.RGBA, x, y, width, height int, seconds float64) mgl64.Vec3 {
	aspect := float64(width) / float64(height)
	point := mgl64.Vec2{
		((float64(x)+0.5)/float64(width) - 0.5) * aspect / p.scale,
		((float64(y)+0.5)/float64(height) - 0.5) / p.scale,
	}
	point = displace(s.flowNoise, p.flow, point, seconds)

	var base mgl64.Vec3
	if texture != nil {
		uv := mgl64.Vec2{point.X()/aspect + 0.5, point.Y() + 0.5}
		base = sampleTexture(texture, p.image, uv, width, height)
	} else {
		base = stripeColor(p.stripes, point, seconds)
	}
	if p.noise.visible {
		base = compositeNoise(s.layerNoise, p.noise, base, point, seconds)
	}
	return base
}

func toByte(v float64) uint8 {
	return uint8(math.Round(mgl64.Clamp(v, 0, 1) * 255))
}

func truncateURL(url string) string {
	const limit = 96
	if len(url) <= limit {
		return url
	}
	return url[:limit] + "..."
}
