package shader

import (
	"sort"
	"strings"
)

// MarbleImageURL is the marble texture used by the home page background.
const MarbleImageURL = "https://res.cloudinary.com/dby6mmmff/image/upload/u8219894999_marble_graphics_on_a_white_background_technology_--_154f16c6-cd0a-4b56-bc11-ed9d553d6f29_tgxx31"

// Preset is a named configuration that can be loaded into a Store.
type Preset struct {
	Name        string
	Description string
	Config      Config
}

var presetBuilders = map[string]func() Preset{
	"default": func() Preset {
		return Preset{
			Name:        "default",
			Description: "Grey stripes with blue-noise dithering",
			Config:      Defaults(),
		}
	},
	"marble": func() Preset {
		cfg := Defaults()
		cfg.FlowField = FlowField{Detail: 0.9, Speed: 1.2, Strength: 0.11}
		cfg.ImageTexture = ImageTexture{
			URL:        MarbleImageURL,
			ObjectFit:  FitCover,
			Brightness: 0.19,
			Contrast:   0.42,
		}
		cfg.SimplexNoise = SimplexNoise{
			Visible:  false,
			Balance:  0.3,
			ColorB:   "#000000",
			Contrast: 1,
			Speed:    0.1,
		}
		cfg.Dither = Dither{
			Visible:   true,
			Pattern:   DitherBayer2,
			PixelSize: 3,
			ColorA:    "#f1c9fe",
		}
		cfg.ChromaticAberration = ChromaticAberration{}
		cfg.AspectRatio = AspectFree
		return Preset{
			Name:        "marble",
			Description: "Marble texture under a lilac bayer dither",
			Config:      cfg,
		}
	},
}

// LookupPreset returns the preset registered under name.
func LookupPreset(name string) (Preset, bool) {
	build, ok := presetBuilders[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Preset{}, false
	}
	return build(), true
}

// PresetNames returns registered preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presetBuilders))
	for name := range presetBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
