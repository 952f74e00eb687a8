package events

import (
	"net/http"

	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/httpx"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Events, h.handlePage)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIEvents, h.handleAPI)
	mux.HandleFunc(routepath.APIEvents, httpx.MethodNotAllowed(http.MethodGet))
	mux.HandleFunc(http.MethodGet+" "+routepath.Events+"/{rest...}", h.handleNotFound)
}
