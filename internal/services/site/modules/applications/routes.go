package applications

import (
	"net/http"

	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/httpx"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Apply, h.handleForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.Apply, h.handleFormSubmit)

	mux.HandleFunc(http.MethodPost+" "+routepath.APIApplications, h.handleAPISubmit)
	mux.HandleFunc(routepath.APIApplications, httpx.MethodNotAllowed(http.MethodPost))

	mux.HandleFunc(http.MethodGet+" "+routepath.Apply+"/{rest...}", h.handleNotFound)
}
