package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
)

// Control kinds understood by the shader panel script.
const (
	ControlRange    = "range"
	ControlColor    = "color"
	ControlToggle   = "toggle"
	ControlSelect   = "select"
	ControlText     = "text"
	ControlTextArea = "textarea"
)

// ShaderControl is one input bound to a config field.
type ShaderControl struct {
	Key     string
	Label   string
	Kind    string
	Value   string
	Min     string
	Max     string
	Step    string
	Options []string
	Checked bool
}

// ShaderGroup is a labelled set of controls for one parameter group.
type ShaderGroup struct {
	Name     string
	Label    string
	Controls []ShaderControl
}

// ShaderView is the data for the tweaker page. ConfigJSON is written
// unescaped and must come from encoding/json, which escapes "<" and ">".
type ShaderView struct {
	ConfigJSON   string
	Groups       []ShaderGroup
	AspectRatios []string
	AspectRatio  string
	Scale        string
	Presets      []string
}

// Shader renders the live preview and its control panel.
func Shader(loc Localizer, view ShaderView) templ.Component {
	return component(func(_ context.Context, h *html) {
		loc := localizer(loc)
		h.element("h1", loc.Sprintf("shader.title"), "class", "page-title")

		h.open("div", "class", "shader-tweaker",
			"data-api", routepath.APIShader,
			"data-socket", routepath.APIShaderSocket,
			"data-frame", routepath.APIShaderFrame,
		)

		h.raw(`<section class="shader-preview">`)
		h.element("h2", loc.Sprintf("shader.preview"), "class", "visually-hidden")
		h.raw(`<div class="preview-container" id="shader-container">`)
		h.open("img", "id", "shader-frame", "src", routepath.APIShaderFrame, "alt", loc.Sprintf("shader.preview"))
		h.raw("</div>")
		h.raw(`<div class="preview-actions">`)
		h.open("a", "class", "button", "href", routepath.APIShaderSnapshot, "download", "shader-snapshot.png")
		h.text(loc.Sprintf("shader.snapshot"))
		h.close("a")
		h.open("button", "class", "button", "type", "button", "data-action", "reset")
		h.text(loc.Sprintf("shader.reset"))
		h.close("button")
		h.raw("</div></section>")

		h.raw(`<section class="shader-controls">`)

		h.raw(`<fieldset class="control-group">`)
		h.element("legend", loc.Sprintf("shader.aspect"))
		h.open("select", "name", "aspectRatio", "data-setting", "aspect")
		for _, ratio := range view.AspectRatios {
			h.raw("<option")
			h.attr("value", ratio)
			h.flag("selected", ratio == view.AspectRatio)
			h.raw(">")
			h.text(ratio)
			h.close("option")
		}
		h.close("select")
		h.open("label", "for", "shader-scale")
		h.text(loc.Sprintf("shader.scale"))
		h.close("label")
		h.open("input", "id", "shader-scale", "type", "range", "name", "scale", "data-setting", "scale",
			"min", "0.5", "max", "2", "step", "0.1", "value", view.Scale)
		h.raw("</fieldset>")

		if len(view.Presets) > 0 {
			h.raw(`<fieldset class="control-group">`)
			h.element("legend", loc.Sprintf("shader.presets"))
			for _, preset := range view.Presets {
				h.open("button", "class", "chip", "type", "button", "data-preset", preset)
				h.text(preset)
				h.close("button")
			}
			h.raw("</fieldset>")
		}

		for _, group := range view.Groups {
			h.open("fieldset", "class", "control-group", "data-group", group.Name)
			h.element("legend", group.Label)
			for _, control := range group.Controls {
				shaderControl(h, group.Name, control)
			}
			h.close("fieldset")
		}
		h.raw("</section>")

		h.open("script", "type", "application/json", "id", "shader-config")
		h.raw(view.ConfigJSON)
		h.close("script")
		h.close("div")
	})
}

func shaderControl(h *html, group string, control ShaderControl) {
	id := group + "-" + control.Key
	h.open("div", "class", "control control-"+control.Kind)
	h.open("label", "for", id)
	h.text(control.Label)
	h.close("label")
	switch control.Kind {
	case ControlSelect:
		h.open("select", "id", id, "data-field", control.Key)
		for _, option := range control.Options {
			h.raw("<option")
			h.attr("value", option)
			h.flag("selected", option == control.Value)
			h.raw(">")
			h.text(option)
			h.close("option")
		}
		h.close("select")
	case ControlToggle:
		h.raw("<input")
		h.attr("id", id)
		h.attr("type", "checkbox")
		h.attr("data-field", control.Key)
		h.flag("checked", control.Checked)
		h.raw(">")
	case ControlTextArea:
		h.open("textarea", "id", id, "data-field", control.Key, "rows", "2")
		h.text(control.Value)
		h.close("textarea")
	case ControlRange:
		h.open("input", "id", id, "type", "range", "data-field", control.Key,
			"min", control.Min, "max", control.Max, "step", control.Step, "value", control.Value)
		h.element("output", control.Value, "for", id)
	default:
		h.open("input", "id", id, "type", control.Kind, "data-field", control.Key, "value", control.Value)
	}
	h.close("div")
}
