package shader

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	apperrors "github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/errors"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/httpx"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/pagerender"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/templates"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader/preview"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader/surface"
	"go.uber.org/zap"
)

const (
	maxBodyBytes = 16 << 10

	// ScriptPath is the panel script loaded by the tweaker page.
	ScriptPath = "/static/js/shader.js"

	presetImageSuffix = ".png"
)

type aspectRatioRequest struct {
	AspectRatio string `json:"aspectRatio"`
}

type scaleRequest struct {
	Scale *float64 `json:"scale"`
}

type presetList struct {
	Presets []presetSummary `json:"presets"`
}

type presetSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type handlers struct {
	service *service
	logger  *zap.Logger
}

func newHandlers(s *service, deps module.Dependencies) handlers {
	return handlers{service: s, logger: deps.LoggerOrNop()}
}

func (h handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	cfg := h.service.store.Snapshot()
	configJSON, err := json.Marshal(cfg)
	if err != nil {
		h.logger.Error("encode shader config", zap.Error(err))
		pagerender.WriteError(w, r, err)
		return
	}
	err = pagerender.WritePage(w, r, pagerender.Page{
		TitleKey: "shader.title",
		Active:   templates.NavShader,
		Scripts:  []string{ScriptPath},
		Body: func(loc templates.Localizer) templ.Component {
			return templates.Shader(loc, templates.ShaderView{
				ConfigJSON:   string(configJSON),
				Groups:       panelGroups(loc, cfg),
				AspectRatios: aspectOptions(),
				AspectRatio:  string(cfg.AspectRatio),
				Scale:        formatNumber(cfg.Scale),
				Presets:      shader.PresetNames(),
			})
		},
	})
	if err != nil {
		h.logger.Error("render shader page", zap.Error(err))
		pagerender.WriteError(w, r, err)
	}
}

func (handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	pagerender.WriteNotFound(w, r)
}

func (handlers) handleAPINotFound(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSONError(w, http.StatusNotFound, "Not found")
}

func (h handlers) handleConfig(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, h.service.state())
}

func (h handlers) handleSetGroup(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	current, err := h.service.setGroup(r.PathValue("group"), body)
	h.writeState(w, current, err)
}

func (h handlers) handleSetAspectRatio(w http.ResponseWriter, r *http.Request) {
	var req aspectRatioRequest
	if err := httpx.DecodeJSON(r, maxBodyBytes, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	current, err := h.service.setAspectRatio(req.AspectRatio)
	h.writeState(w, current, err)
}

func (h handlers) handleSetScale(w http.ResponseWriter, r *http.Request) {
	var req scaleRequest
	if err := httpx.DecodeJSON(r, maxBodyBytes, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if req.Scale == nil {
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, "scale is required")
		return
	}
	current, err := h.service.setScale(*req.Scale)
	h.writeState(w, current, err)
}

func (h handlers) handleReset(w http.ResponseWriter, _ *http.Request) {
	h.writeState(w, h.service.reset(), nil)
}

func (h handlers) handleResize(w http.ResponseWriter, r *http.Request) {
	var size surface.Size
	if err := httpx.DecodeJSON(r, maxBodyBytes, &size); err != nil {
		httpx.WriteError(w, err)
		return
	}
	current, err := h.service.resize(size)
	h.writeState(w, current, err)
}

func (h handlers) handleLoadPreset(w http.ResponseWriter, r *http.Request) {
	current, err := h.service.loadPreset(r.PathValue("name"))
	h.writeState(w, current, err)
}

func (h handlers) handlePresets(w http.ResponseWriter, _ *http.Request) {
	names := shader.PresetNames()
	list := presetList{Presets: make([]presetSummary, 0, len(names))}
	for _, name := range names {
		preset, ok := shader.LookupPreset(name)
		if !ok {
			continue
		}
		list.Presets = append(list.Presets, presetSummary{Name: preset.Name, Description: preset.Description})
	}
	_ = httpx.WriteJSON(w, http.StatusOK, list)
}

// handlePresetImage serves GET /api/shader/presets/{name}.png?w=&h=.
func (h handlers) handlePresetImage(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(r.PathValue("name"), presetImageSuffix)
	if !ok {
		h.handleAPINotFound(w, r)
		return
	}
	width, _ := strconv.Atoi(r.URL.Query().Get("w"))
	height, _ := strconv.Atoi(r.URL.Query().Get("h"))
	data, err := h.service.presetImage(r.Context(), name, width, height)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindUnknown {
			h.logger.Error("render preset image", zap.String("preset", name), zap.Error(err))
		}
		httpx.WriteError(w, err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writePNG(w, data)
}

func (h handlers) handleFrame(w http.ResponseWriter, r *http.Request) {
	data, ok, err := h.service.frame(r.Context())
	if err != nil {
		h.logger.Error("render shader frame", zap.Error(err))
		httpx.WriteError(w, err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writePNG(w, data)
}

func (h handlers) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	ok, err := h.service.snapshot(r.Context(), &buf)
	if err != nil {
		h.logger.Error("export shader snapshot", zap.Error(err))
		httpx.WriteError(w, err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+preview.SnapshotFilename+`"`)
	w.Header().Set("Cache-Control", "no-store")
	writePNG(w, buf.Bytes())
}

func (h handlers) writeState(w http.ResponseWriter, current state, err error) {
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, current)
}

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
