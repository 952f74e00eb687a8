// Package shader holds the background shader parameters and the store that
// control surfaces mutate and renderers observe.
package shader

import "strings"

// DitherPattern names the threshold algorithm used by the dither layer.
type DitherPattern string

const (
	DitherBayer2       DitherPattern = "bayer2"
	DitherBayer4       DitherPattern = "bayer4"
	DitherBayer8       DitherPattern = "bayer8"
	DitherClusteredDot DitherPattern = "clusteredDot"
	DitherBlueNoise    DitherPattern = "blueNoise"
	DitherWhiteNoise   DitherPattern = "whiteNoise"
)

// DitherPatterns lists every supported dither pattern in control-panel order.
func DitherPatterns() []DitherPattern {
	return []DitherPattern{
		DitherBayer2,
		DitherBayer4,
		DitherBayer8,
		DitherClusteredDot,
		DitherBlueNoise,
		DitherWhiteNoise,
	}
}

// Known reports whether p is one of the supported patterns.
func (p DitherPattern) Known() bool {
	for _, candidate := range DitherPatterns() {
		if p == candidate {
			return true
		}
	}
	return false
}

// ObjectFit controls how an image texture fills the render surface.
type ObjectFit string

const (
	FitCover     ObjectFit = "cover"
	FitContain   ObjectFit = "contain"
	FitFill      ObjectFit = "fill"
	FitScaleDown ObjectFit = "scale-down"
	FitNone      ObjectFit = "none"
)

// ObjectFits lists every supported object-fit mode.
func ObjectFits() []ObjectFit {
	return []ObjectFit{FitCover, FitContain, FitFill, FitScaleDown, FitNone}
}

// Known reports whether f is one of the supported modes.
func (f ObjectFit) Known() bool {
	for _, candidate := range ObjectFits() {
		if f == candidate {
			return true
		}
	}
	return false
}

// AspectRatio is the render surface constraint selected in the control panel.
type AspectRatio string

const (
	Aspect16x9 AspectRatio = "16:9"
	Aspect4x3  AspectRatio = "4:3"
	Aspect1x1  AspectRatio = "1:1"
	AspectFree AspectRatio = "free"
)

// AspectRatios lists every selectable aspect ratio.
func AspectRatios() []AspectRatio {
	return []AspectRatio{Aspect16x9, Aspect4x3, Aspect1x1, AspectFree}
}

// Terms returns the ratio as width:height integers. Free and unknown values
// report ok=false.
func (a AspectRatio) Terms() (num int, den int, ok bool) {
	switch a {
	case Aspect16x9:
		return 16, 9, true
	case Aspect4x3:
		return 4, 3, true
	case Aspect1x1:
		return 1, 1, true
	default:
		return 0, 0, false
	}
}

// ParseAspectRatio normalizes user input such as " 4:3 " or "FREE".
func ParseAspectRatio(value string) AspectRatio {
	trimmed := strings.TrimSpace(value)
	if strings.EqualFold(trimmed, string(AspectFree)) {
		return AspectFree
	}
	return AspectRatio(trimmed)
}

// FlowField displaces the base and noise layers along a noise-driven field.
type FlowField struct {
	Detail   float64 `json:"detail" yaml:"detail"`
	Speed    float64 `json:"speed" yaml:"speed"`
	Strength float64 `json:"strength" yaml:"strength"`
}

// Stripes is the procedural base layer used when no image is set.
type Stripes struct {
	Balance float64 `json:"balance" yaml:"balance"`
	ColorA  string  `json:"colorA" yaml:"colorA"`
	Speed   float64 `json:"speed" yaml:"speed"`
}

// SimplexNoise is an animated noise layer composited over the base layer.
type SimplexNoise struct {
	Balance  float64 `json:"balance" yaml:"balance"`
	ColorB   string  `json:"colorB" yaml:"colorB"`
	Contrast float64 `json:"contrast" yaml:"contrast"`
	Speed    float64 `json:"speed" yaml:"speed"`
	Visible  bool    `json:"visible" yaml:"visible"`
}

// Dither quantizes the composed frame into a two-tone pattern.
type Dither struct {
	ColorA    string        `json:"colorA" yaml:"colorA"`
	Pattern   DitherPattern `json:"pattern" yaml:"pattern"`
	Visible   bool          `json:"visible" yaml:"visible"`
	PixelSize int           `json:"pixelSize" yaml:"pixelSize"`
}

// ImageTexture replaces the stripes base layer while URL is non-empty.
type ImageTexture struct {
	URL        string    `json:"url" yaml:"url"`
	ObjectFit  ObjectFit `json:"objectFit" yaml:"objectFit"`
	Brightness float64   `json:"brightness" yaml:"brightness"`
	Contrast   float64   `json:"contrast" yaml:"contrast"`
}

// HasImage reports whether the texture drives the base layer.
func (t ImageTexture) HasImage() bool {
	return strings.TrimSpace(t.URL) != ""
}

// ChromaticAberration splits color channels along Angle (degrees).
type ChromaticAberration struct {
	Strength float64 `json:"strength" yaml:"strength"`
	Angle    float64 `json:"angle" yaml:"angle"`
}

// Config is the full parameter set consumed by a render pipeline.
//
// Config holds no reference types, so assigning it copies every group.
type Config struct {
	FlowField           FlowField           `json:"flowField" yaml:"flowField"`
	Stripes             Stripes             `json:"stripes" yaml:"stripes"`
	SimplexNoise        SimplexNoise        `json:"simplexNoise" yaml:"simplexNoise"`
	Dither              Dither              `json:"dither" yaml:"dither"`
	ImageTexture        ImageTexture        `json:"imageTexture" yaml:"imageTexture"`
	ChromaticAberration ChromaticAberration `json:"chromaticAberration" yaml:"chromaticAberration"`
	AspectRatio         AspectRatio         `json:"aspectRatio" yaml:"aspectRatio"`
	Scale               float64             `json:"scale" yaml:"scale"`
}

// BaseLayer names the layer that currently draws under the noise.
func (c Config) BaseLayer() string {
	if c.ImageTexture.HasImage() {
		return "imageTexture"
	}
	return "stripes"
}

// Defaults returns the initial configuration. Each call builds a new value.
func Defaults() Config {
	return Config{
		FlowField: FlowField{Detail: 1.2, Speed: 0, Strength: 0.25},
		Stripes:   Stripes{Balance: 0.1, ColorA: "#a6a6a6", Speed: 0.4},
		SimplexNoise: SimplexNoise{
			Balance:  0.8,
			ColorB:   "#e3c6f5",
			Contrast: 1,
			Speed:    1.1,
			Visible:  false,
		},
		Dither: Dither{
			ColorA:    "#cfcfcf",
			Pattern:   DitherBlueNoise,
			Visible:   true,
			PixelSize: 4,
		},
		ImageTexture:        ImageTexture{URL: "", ObjectFit: FitCover, Brightness: 0, Contrast: 0},
		ChromaticAberration: ChromaticAberration{Strength: 0.2, Angle: 0},
		AspectRatio:         Aspect16x9,
		Scale:               1,
	}
}
