package shader

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/thinkinrocks/thinkin.rocks/internal/platform/timeouts"
	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	apperrors "github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/errors"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader/preview"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader/render"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader/surface"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// Default and maximum sizes for one-off preset renders.
	defaultPresetWidth  = 1280
	defaultPresetHeight = 720
	maxPresetWidth      = 1920
	maxPresetHeight     = 1920
	minPresetSide       = 16

	maxPresetImages = 32
)

// state is the JSON envelope every mutation answers with.
type state struct {
	Config  shader.Config       `json:"config"`
	Surface *surface.Dimensions `json:"surface,omitempty"`
}

type service struct {
	store    *shader.Store
	preview  *preview.Renderer
	pipeline render.Pipeline
	now      func() time.Time
	started  time.Time
	logger   *zap.Logger

	frames singleflight.Group

	presetMu     sync.Mutex
	presetImages map[string][]byte
	presetOrder  []string
}

func newService(deps module.Dependencies) *service {
	logger := deps.LoggerOrNop()
	pipeline := deps.Pipeline
	if pipeline == nil {
		pipeline = render.NewSoftware(render.WithLogger(logger))
	}
	renderer := deps.Preview
	if renderer == nil {
		renderer = preview.New(deps.Shader, pipeline, preview.WithLogger(logger))
	}
	now := deps.Clock()
	return &service{
		store:        deps.Shader,
		preview:      renderer,
		pipeline:     pipeline,
		now:          now,
		started:      now(),
		logger:       logger,
		presetImages: make(map[string][]byte),
	}
}

func (s *service) state() state {
	return state{Config: s.store.Snapshot()}
}

func (s *service) setGroup(name string, patch []byte) (state, error) {
	group, ok := shader.ParseGroup(name)
	if !ok {
		return state{}, apperrors.E(apperrors.KindNotFound, fmt.Sprintf("unknown shader group %q", name))
	}
	if err := s.store.SetGroup(group, patch); err != nil {
		return state{}, apperrors.Wrap(apperrors.KindInvalidInput, "Invalid "+string(group)+" update", err)
	}
	return s.state(), nil
}

func (s *service) setAspectRatio(value string) (state, error) {
	ratio := shader.ParseAspectRatio(value)
	if !slices.Contains(shader.AspectRatios(), ratio) {
		return state{}, apperrors.E(apperrors.KindInvalidInput, fmt.Sprintf("unsupported aspect ratio %q", value))
	}
	s.store.SetAspectRatio(ratio)
	return s.state(), nil
}

func (s *service) setScale(value float64) (state, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return state{}, apperrors.E(apperrors.KindInvalidInput, "scale must be a positive number")
	}
	s.store.SetScale(value)
	return s.state(), nil
}

func (s *service) reset() state {
	s.store.Reset()
	return s.state()
}

func (s *service) loadPreset(name string) (state, error) {
	preset, ok := shader.LookupPreset(name)
	if !ok {
		return state{}, apperrors.E(apperrors.KindNotFound, fmt.Sprintf("unknown preset %q", name))
	}
	s.store.Load(preset.Config)
	return s.state(), nil
}

func (s *service) resize(size surface.Size) (state, error) {
	if math.IsNaN(size.Width) || math.IsNaN(size.Height) || size.Width < 0 || size.Height < 0 {
		return state{}, apperrors.E(apperrors.KindInvalidInput, "container size must not be negative")
	}
	dims := s.preview.Observe(size.Clamp())
	current := s.state()
	current.Surface = &dims
	return current, nil
}

// frame renders the live surface at the current animation time. Concurrent
// callers share one render. A zero-area surface reports ok=false.
func (s *service) frame(ctx context.Context) ([]byte, bool, error) {
	result, err, _ := s.frames.Do("frame", func() (any, error) {
		renderCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.FrameRender)
		defer cancel()
		if err := s.preview.Tick(renderCtx, s.now().Sub(s.started)); err != nil {
			return nil, fmt.Errorf("render frame: %w", err)
		}
		img := s.preview.Surface()
		if img == nil {
			return []byte(nil), nil
		}
		return encodePNG(img)
	})
	if err != nil {
		return nil, false, err
	}
	data := result.([]byte)
	return data, len(data) > 0, nil
}

// snapshot writes the last rendered surface scaled to the export width. It
// renders once first when nothing has been drawn yet.
func (s *service) snapshot(ctx context.Context, w io.Writer) (bool, error) {
	img := s.preview.Surface()
	if img == nil || s.preview.Dirty() {
		if _, _, err := s.frame(ctx); err != nil {
			return false, err
		}
		img = s.preview.Surface()
	}
	if img == nil {
		return false, nil
	}
	return preview.Export(img, w)
}

// presetImage renders preset name once at width x height, fitted to the
// preset's aspect ratio, and caches the PNG.
func (s *service) presetImage(ctx context.Context, name string, width, height int) ([]byte, error) {
	preset, ok := shader.LookupPreset(name)
	if !ok {
		return nil, apperrors.E(apperrors.KindNotFound, fmt.Sprintf("unknown preset %q", name))
	}
	width, height = clampPresetSize(width, height)
	key := preset.Name + "/" + strconv.Itoa(width) + "x" + strconv.Itoa(height)

	s.presetMu.Lock()
	cached, ok := s.presetImages[key]
	s.presetMu.Unlock()
	if ok {
		return cached, nil
	}

	result, err, _ := s.frames.Do("preset:"+key, func() (any, error) {
		dims := surface.Fit(surface.Size{Width: float64(width), Height: float64(height)}, preset.Config.AspectRatio)
		if dims.Empty() {
			return nil, apperrors.E(apperrors.KindInvalidInput, "preset image size is empty")
		}
		renderCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.FrameRender)
		defer cancel()
		img := image.NewRGBA(image.Rect(0, 0, dims.Width, dims.Height))
		if err := s.pipeline.Render(renderCtx, render.Frame{Config: preset.Config}, img); err != nil {
			return nil, fmt.Errorf("render preset %s: %w", preset.Name, err)
		}
		data, err := encodePNG(img)
		if err != nil {
			return nil, err
		}
		s.cachePresetImage(key, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (s *service) cachePresetImage(key string, data []byte) {
	s.presetMu.Lock()
	defer s.presetMu.Unlock()
	if _, ok := s.presetImages[key]; ok {
		return
	}
	if len(s.presetOrder) >= maxPresetImages {
		oldest := s.presetOrder[0]
		s.presetOrder = s.presetOrder[1:]
		delete(s.presetImages, oldest)
	}
	s.presetImages[key] = data
	s.presetOrder = append(s.presetOrder, key)
}

func clampPresetSize(width, height int) (int, int) {
	if width <= 0 {
		width = defaultPresetWidth
	}
	if height <= 0 {
		height = defaultPresetHeight
	}
	return min(max(width, minPresetSide), maxPresetWidth), min(max(height, minPresetSide), maxPresetHeight)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
