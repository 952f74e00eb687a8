// Package preview keeps a live render surface in step with a shader store.
package preview

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/thinkinrocks/thinkin.rocks/internal/shader"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader/render"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader/surface"
	"go.uber.org/zap"
)

// ErrClosed is returned by Tick after Close.
var ErrClosed = errors.New("preview renderer is closed")

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the renderer logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer observes a store and a container size, and renders frames sized to
// the selected aspect ratio.
type Renderer struct {
	pipeline render.Pipeline
	logger   *zap.Logger

	mu          sync.Mutex
	config      shader.Config
	container   surface.Size
	dims        surface.Dimensions
	frame       *image.RGBA
	version     uint64
	rendered    uint64
	closed      bool
	unsubscribe func()
}

// New subscribes a renderer to store. Call Close to stop observing.
func New(store *shader.Store, pipeline render.Pipeline, opts ...Option) *Renderer {
	if pipeline == nil {
		pipeline = render.NewSoftware()
	}
	r := &Renderer{
		pipeline: pipeline,
		logger:   zap.NewNop(),
		config:   store.Snapshot(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.unsubscribe = store.Subscribe(r.onConfig)
	return r
}

func (r *Renderer) onConfig(cfg shader.Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.config = cfg
	r.resizeLocked()
}

// Observe records the container size and returns the resulting surface.
// Each side is capped at surface.MaxSide.
func (r *Renderer) Observe(container surface.Size) surface.Dimensions {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.container = container.Clamp()
	r.resizeLocked()
	return r.dims
}

func (r *Renderer) resizeLocked() {
	next := surface.Fit(r.container, r.config.AspectRatio)
	if next != r.dims {
		r.logger.Debug("surface resized",
			zap.Int("width", next.Width),
			zap.Int("height", next.Height),
			zap.String("aspect_ratio", string(r.config.AspectRatio)),
		)
		r.dims = next
	}
	r.version++
}

// Dimensions returns the current surface size.
func (r *Renderer) Dimensions() surface.Dimensions {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dims
}

// Config returns the configuration the next frame will use.
func (r *Renderer) Config() shader.Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.config
}

// Tick renders the current configuration at elapsed on the animation clock.
// A zero-area surface clears the frame and renders nothing.
func (r *Renderer) Tick(ctx context.Context, elapsed time.Duration) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	cfg, dims, version := r.config, r.dims, r.version
	if dims.Empty() {
		r.frame = nil
		r.rendered = version
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	frame := image.NewRGBA(image.Rect(0, 0, dims.Width, dims.Height))
	if err := r.pipeline.Render(ctx, render.Frame{Config: cfg, Elapsed: elapsed}, frame); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	// A resize that landed mid-render leaves the older frame in place.
	if r.dims != dims && r.frame != nil {
		return nil
	}
	r.frame = frame
	r.rendered = version
	return nil
}

// Dirty reports whether the store or container changed since the last Tick.
func (r *Renderer) Dirty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rendered != r.version
}

// Surface returns the last rendered frame, or nil when none exists. The
// returned image is owned by the caller.
func (r *Renderer) Surface() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frame == nil {
		return nil
	}
	clone := image.NewRGBA(r.frame.Rect)
	copy(clone.Pix, r.frame.Pix)
	return clone
}

// Close stops observing the store. It is safe to call more than once.
func (r *Renderer) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.frame = nil
	unsubscribe := r.unsubscribe
	r.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}
