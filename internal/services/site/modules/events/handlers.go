package events

import (
	"net/http"

	"github.com/a-h/templ"
	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	apperrors "github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/errors"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/httpx"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/pagerender"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/templates"
	"go.uber.org/zap"
)

// CacheControl is the shared-cache policy for the events API.
const CacheControl = "public, s-maxage=300, stale-while-revalidate=600"

type handlers struct {
	service service
	logger  *zap.Logger
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{service: s, logger: deps.LoggerOrNop()}
}

func (h handlers) handleAPI(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.list(r.Context())
	if err != nil {
		h.logger.Error("list events", zap.Error(err))
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, apperrors.PublicMessage(err))
		return
	}
	w.Header().Set("Cache-Control", CacheControl)
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]any{"events": entries})
}

func (h handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	past := r.URL.Query().Get(routepath.EventsTabQueryKey) == routepath.EventsTabPast
	view, err := h.service.view(r.Context(), past)
	if err != nil {
		h.logger.Warn("events page without calendar", zap.Error(err))
	}
	err = pagerender.WritePage(w, r, pagerender.Page{
		TitleKey: "site.events.title",
		Active:   templates.NavEvents,
		Body: func(loc templates.Localizer) templ.Component {
			return templates.Events(loc, view)
		},
	})
	if err != nil {
		h.logger.Error("render events page", zap.Error(err))
		pagerender.WriteError(w, r, err)
	}
}

func (handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	pagerender.WriteNotFound(w, r)
}
