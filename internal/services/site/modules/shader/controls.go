package shader

import (
	"strconv"

	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/templates"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader"
)

// control describes one panel input. Ranges only bound the slider; the store
// accepts any value and the renderer clamps at draw time.
type control struct {
	key   string
	label string
	kind  string
	min   float64
	max   float64
	step  float64
	value func(shader.Config) any
	// options lists select choices.
	options []string
}

type controlGroup struct {
	group    shader.Group
	controls []control
}

func slider(key, label string, lo, hi, step float64, value func(shader.Config) any) control {
	return control{key: key, label: label, kind: templates.ControlRange, min: lo, max: hi, step: step, value: value}
}

func colorField(key, label string, value func(shader.Config) any) control {
	return control{key: key, label: label, kind: templates.ControlColor, value: value}
}

func toggle(key, label string, value func(shader.Config) any) control {
	return control{key: key, label: label, kind: templates.ControlToggle, value: value}
}

// controlSchema lists the panel groups in pipeline order.
func controlSchema() []controlGroup {
	return []controlGroup{
		{group: shader.GroupFlowField, controls: []control{
			slider("detail", "Detail", 0, 5, 0.1, func(c shader.Config) any { return c.FlowField.Detail }),
			slider("speed", "Speed", 0, 5, 0.1, func(c shader.Config) any { return c.FlowField.Speed }),
			slider("strength", "Strength", 0, 1, 0.01, func(c shader.Config) any { return c.FlowField.Strength }),
		}},
		{group: shader.GroupStripes, controls: []control{
			slider("balance", "Balance", 0, 1, 0.01, func(c shader.Config) any { return c.Stripes.Balance }),
			colorField("colorA", "Color A", func(c shader.Config) any { return c.Stripes.ColorA }),
			slider("speed", "Speed", -1, 1, 0.01, func(c shader.Config) any { return c.Stripes.Speed }),
		}},
		{group: shader.GroupImageTexture, controls: []control{
			{key: "url", label: "Image URL", kind: templates.ControlTextArea, value: func(c shader.Config) any { return c.ImageTexture.URL }},
			{key: "objectFit", label: "Object Fit", kind: templates.ControlSelect, options: objectFitOptions(), value: func(c shader.Config) any { return string(c.ImageTexture.ObjectFit) }},
			slider("brightness", "Brightness", -1, 1, 0.01, func(c shader.Config) any { return c.ImageTexture.Brightness }),
			slider("contrast", "Contrast", -1, 1, 0.01, func(c shader.Config) any { return c.ImageTexture.Contrast }),
		}},
		{group: shader.GroupSimplexNoise, controls: []control{
			toggle("visible", "Visible", func(c shader.Config) any { return c.SimplexNoise.Visible }),
			slider("balance", "Balance", 0, 1, 0.01, func(c shader.Config) any { return c.SimplexNoise.Balance }),
			colorField("colorB", "Color B", func(c shader.Config) any { return c.SimplexNoise.ColorB }),
			slider("contrast", "Contrast", 0, 2, 0.01, func(c shader.Config) any { return c.SimplexNoise.Contrast }),
			slider("speed", "Speed", 0, 5, 0.1, func(c shader.Config) any { return c.SimplexNoise.Speed }),
		}},
		{group: shader.GroupDither, controls: []control{
			toggle("visible", "Visible", func(c shader.Config) any { return c.Dither.Visible }),
			colorField("colorA", "Color A", func(c shader.Config) any { return c.Dither.ColorA }),
			{key: "pattern", label: "Pattern", kind: templates.ControlSelect, options: ditherOptions(), value: func(c shader.Config) any { return string(c.Dither.Pattern) }},
			slider("pixelSize", "Pixel Size", 1, 20, 1, func(c shader.Config) any { return c.Dither.PixelSize }),
		}},
		{group: shader.GroupChromaticAberration, controls: []control{
			slider("strength", "Strength", 0, 1, 0.01, func(c shader.Config) any { return c.ChromaticAberration.Strength }),
			slider("angle", "Angle", 0, 360, 1, func(c shader.Config) any { return c.ChromaticAberration.Angle }),
		}},
	}
}

func objectFitOptions() []string {
	fits := shader.ObjectFits()
	options := make([]string, 0, len(fits))
	for _, fit := range fits {
		options = append(options, string(fit))
	}
	return options
}

func ditherOptions() []string {
	patterns := shader.DitherPatterns()
	options := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		options = append(options, string(pattern))
	}
	return options
}

func aspectOptions() []string {
	ratios := shader.AspectRatios()
	options := make([]string, 0, len(ratios))
	for _, ratio := range ratios {
		options = append(options, string(ratio))
	}
	return options
}

// panelGroups renders the schema against cfg for the page template.
func panelGroups(loc templates.Localizer, cfg shader.Config) []templates.ShaderGroup {
	schema := controlSchema()
	groups := make([]templates.ShaderGroup, 0, len(schema))
	for _, entry := range schema {
		group := templates.ShaderGroup{
			Name:     string(entry.group),
			Label:    loc.Sprintf("shader.group." + string(entry.group)),
			Controls: make([]templates.ShaderControl, 0, len(entry.controls)),
		}
		for _, c := range entry.controls {
			group.Controls = append(group.Controls, c.view(cfg))
		}
		groups = append(groups, group)
	}
	return groups
}

func (c control) view(cfg shader.Config) templates.ShaderControl {
	view := templates.ShaderControl{
		Key:     c.key,
		Label:   c.label,
		Kind:    c.kind,
		Options: c.options,
	}
	if c.kind == templates.ControlRange {
		view.Min = formatNumber(c.min)
		view.Max = formatNumber(c.max)
		view.Step = formatNumber(c.step)
	}
	switch value := c.value(cfg).(type) {
	case bool:
		view.Checked = value
	case float64:
		view.Value = formatNumber(value)
	case int:
		view.Value = strconv.Itoa(value)
	case string:
		view.Value = value
	}
	return view
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
