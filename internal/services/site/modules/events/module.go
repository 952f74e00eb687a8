// Package events serves the Luma calendar as a JSON API and an HTML page.
package events

import (
	"net/http"

	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
)

// Module provides event routes.
type Module struct{}

// New returns an events module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "events" }

// Mount wires event route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(deps), deps))
	return module.Mount{
		Prefix:        routepath.Events,
		ExtraPrefixes: []string{routepath.APIEvents},
		Handler:       mux,
	}, nil
}
