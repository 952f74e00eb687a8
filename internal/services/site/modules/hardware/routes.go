package hardware

import (
	"net/http"

	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Hardware, h.handleCatalog)
	mux.HandleFunc(http.MethodGet+" "+routepath.Hardware+"/{rest...}", h.handleNotFound)
}
