package render

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader"
)

// Store values pass through unvalidated; everything is clamped here, at draw
// time.

var white = mgl64.Vec3{1, 1, 1}

type flowParams struct {
	detail   float64
	speed    float64
	strength float64
}

type stripeParams struct {
	balance float64
	color   mgl64.Vec3
	speed   float64
}

type noiseParams struct {
	visible  bool
	balance  float64
	color    mgl64.Vec3
	contrast float64
	speed    float64
}

type imageParams struct {
	fit        shader.ObjectFit
	brightness float64
	contrast   float64
}

type ditherParams struct {
	visible   bool
	pattern   shader.DitherPattern
	pixelSize int
	color     mgl64.Vec3
}

type aberrationParams struct {
	strength float64
	angle    float64
}

type params struct {
	scale      float64
	imageURL   string
	flow       flowParams
	stripes    stripeParams
	noise      noiseParams
	image      imageParams
	dither     ditherParams
	aberration aberrationParams
}

func resolveParams(cfg shader.Config) params {
	defaults := shader.Defaults()

	scale := finite(cfg.Scale, 1)
	if scale <= 0 {
		scale = 1
	}

	fit := cfg.ImageTexture.ObjectFit
	if !fit.Known() {
		fit = shader.FitCover
	}
	pattern := cfg.Dither.Pattern
	if !pattern.Known() {
		pattern = defaults.Dither.Pattern
	}

	url := ""
	if cfg.ImageTexture.HasImage() {
		url = strings.TrimSpace(cfg.ImageTexture.URL)
	}

	return params{
		scale:    scale,
		imageURL: url,
		flow: flowParams{
			detail:   math.Max(0, finite(cfg.FlowField.Detail, 0)),
			speed:    finite(cfg.FlowField.Speed, 0),
			strength: mgl64.Clamp(finite(cfg.FlowField.Strength, 0), 0, 1),
		},
		stripes: stripeParams{
			balance: mgl64.Clamp(finite(cfg.Stripes.Balance, 0), 0, 1),
			color:   parseColor(cfg.Stripes.ColorA, defaults.Stripes.ColorA),
			speed:   finite(cfg.Stripes.Speed, 0),
		},
		noise: noiseParams{
			visible:  cfg.SimplexNoise.Visible,
			balance:  mgl64.Clamp(finite(cfg.SimplexNoise.Balance, 0), 0, 1),
			color:    parseColor(cfg.SimplexNoise.ColorB, defaults.SimplexNoise.ColorB),
			contrast: math.Max(0, finite(cfg.SimplexNoise.Contrast, 1)),
			speed:    finite(cfg.SimplexNoise.Speed, 0),
		},
		image: imageParams{
			fit:        fit,
			brightness: mgl64.Clamp(finite(cfg.ImageTexture.Brightness, 0), -1, 1),
			contrast:   mgl64.Clamp(finite(cfg.ImageTexture.Contrast, 0), -1, 1),
		},
		dither: ditherParams{
			visible:   cfg.Dither.Visible,
			pattern:   pattern,
			pixelSize: max(1, cfg.Dither.PixelSize),
			color:     parseColor(cfg.Dither.ColorA, defaults.Dither.ColorA),
		},
		aberration: aberrationParams{
			strength: mgl64.Clamp(finite(cfg.ChromaticAberration.Strength, 0), 0, 1),
			angle:    wrapDegrees(finite(cfg.ChromaticAberration.Angle, 0)),
		},
	}
}

// parseColor reads a #rgb or #rrggbb string, falling back when it is invalid.
func parseColor(value, fallback string) mgl64.Vec3 {
	c, err := colorful.Hex(strings.TrimSpace(value))
	if err != nil {
		c, err = colorful.Hex(fallback)
		if err != nil {
			return white
		}
	}
	return mgl64.Vec3{c.R, c.G, c.B}
}

// wrapDegrees maps any angle into [0, 360).
func wrapDegrees(angle float64) float64 {
	wrapped := math.Mod(angle, 360)
	if wrapped < 0 {
		wrapped += 360
	}
	return wrapped
}

func finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func mix(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := mgl64.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func luminance(c mgl64.Vec3) float64 {
	return c.Dot(mgl64.Vec3{0.2126, 0.7152, 0.0722})
}

func fract(v float64) float64 {
	return v - math.Floor(v)
}
