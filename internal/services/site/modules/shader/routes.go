package shader

import (
	"net/http"

	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/httpx"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers, hub *socketHub) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Shader, h.handlePage)
	mux.HandleFunc(http.MethodGet+" "+routepath.Shader+"/{rest...}", h.handleNotFound)

	mux.HandleFunc(http.MethodGet+" "+routepath.APIShader, h.handleConfig)
	mux.HandleFunc(routepath.APIShader, httpx.MethodNotAllowed(http.MethodGet))
	mux.HandleFunc(http.MethodPatch+" "+routepath.APIShaderGroup, h.handleSetGroup)
	mux.HandleFunc(http.MethodPut+" "+routepath.APIShaderAspectRatio, h.handleSetAspectRatio)
	mux.HandleFunc(http.MethodPut+" "+routepath.APIShaderScale, h.handleSetScale)
	mux.HandleFunc(http.MethodPost+" "+routepath.APIShaderReset, h.handleReset)
	mux.HandleFunc(http.MethodPost+" "+routepath.APIShaderResize, h.handleResize)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIShaderFrame, h.handleFrame)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIShaderSnapshot, h.handleSnapshot)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIShaderPresets, h.handlePresets)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIShaderPreset, h.handlePresetImage)
	mux.HandleFunc(http.MethodPost+" "+routepath.APIShaderPreset, h.handleLoadPreset)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIShaderSocket, hub.handle)
	mux.HandleFunc(routepath.APIShaderPrefix+"{rest...}", h.handleAPINotFound)
}
