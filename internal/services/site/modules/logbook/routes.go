package logbook

import (
	"net/http"

	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Log, h.handleLog)
	mux.HandleFunc(http.MethodGet+" "+routepath.Log+"/{rest...}", h.handleNotFound)
}
