// Package routepath stores canonical HTTP paths for site modules.
package routepath

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	Root                 = "/"
	Health               = "/healthz"
	StaticPrefix         = "/static/"
	Events               = "/events"
	APIEvents            = "/api/events"
	Hardware             = "/hardware"
	Log                  = "/log"
	Apply                = "/apply"
	APIApplications      = "/api/applications"
	Shader               = "/shader"
	APIShader            = "/api/shader"
	APIShaderPrefix      = "/api/shader/"
	APIShaderGroup       = APIShaderPrefix + "{group}"
	APIShaderAspectRatio = APIShaderPrefix + "aspect-ratio"
	APIShaderScale       = APIShaderPrefix + "scale"
	APIShaderReset       = APIShaderPrefix + "reset"
	APIShaderResize      = APIShaderPrefix + "resize"
	APIShaderFrame       = APIShaderPrefix + "frame.png"
	APIShaderSnapshot    = APIShaderPrefix + "snapshot.png"
	APIShaderSocket      = APIShaderPrefix + "ws"
	APIShaderPresets     = APIShaderPrefix + "presets"
	APIShaderPreset      = APIShaderPrefix + "presets/{name}"
	MCP                  = "/mcp"

	// EventsTabQueryKey selects the upcoming or past events tab.
	EventsTabQueryKey = "tab"
	// EventsTabPast is the past events tab value.
	EventsTabPast = "past"
	// HardwareQueryKey carries the hardware search text.
	HardwareQueryKey = "q"
	// HardwareCategoryKey carries selected hardware categories.
	HardwareCategoryKey = "category"
)

// EventsTab returns the events page for tab.
func EventsTab(tab string) string {
	tab = strings.TrimSpace(tab)
	if tab == "" {
		return Events
	}
	return Events + "?" + url.Values{EventsTabQueryKey: {tab}}.Encode()
}

// HardwareSearch returns the hardware page filtered by query and categories.
func HardwareSearch(query string, categories []string) string {
	values := url.Values{}
	if query = strings.TrimSpace(query); query != "" {
		values.Set(HardwareQueryKey, query)
	}
	for _, category := range categories {
		if category = strings.TrimSpace(category); category != "" {
			values.Add(HardwareCategoryKey, category)
		}
	}
	if len(values) == 0 {
		return Hardware
	}
	return Hardware + "?" + values.Encode()
}

// ShaderGroup returns the update path for a parameter group.
func ShaderGroup(group string) string {
	return APIShaderPrefix + url.PathEscape(strings.TrimSpace(group))
}

// ShaderPreset returns the load path for a preset.
func ShaderPreset(name string) string {
	return APIShaderPresets + "/" + url.PathEscape(strings.TrimSpace(name))
}

// ShaderPresetImage returns a one-off PNG render of a preset at width x height.
func ShaderPresetImage(name string, width, height int) string {
	path := ShaderPreset(name) + ".png"
	values := url.Values{}
	if width > 0 {
		values.Set("w", strconv.Itoa(width))
	}
	if height > 0 {
		values.Set("h", strconv.Itoa(height))
	}
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}
