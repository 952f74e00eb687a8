// Package applications accepts membership-interest applications from the
// HTML form and the JSON API.
package applications

import (
	"errors"
	"net/http"

	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
)

// Module provides application routes.
type Module struct{}

// New returns an applications module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "applications" }

// Mount wires application route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Applications == nil {
		return module.Mount{}, errors.New("application store is required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(deps), deps))
	return module.Mount{
		Prefix:        routepath.Apply,
		ExtraPrefixes: []string{routepath.APIApplications},
		Handler:       mux,
	}, nil
}
