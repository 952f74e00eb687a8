// Package shader serves the background tweaker: the control page, a JSON API
// and WebSocket over the shared shader store, rendered frames, and an optional
// MCP endpoint for agents.
package shader

import (
	"errors"
	"net/http"

	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
)

var errStoreRequired = errors.New("shader store is required")

// Module provides shader tweaker routes.
type Module struct{}

// New returns a shader module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "shader" }

// Mount wires the tweaker page, APIs and, when enabled, the MCP endpoint.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Shader == nil {
		return module.Mount{}, errStoreRequired
	}
	svc := newService(deps)
	hub := newSocketHub(svc, deps.LoggerOrNop())

	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(svc, deps), hub)

	extras := []string{routepath.APIShader}
	if deps.MCPEnabled {
		mux.Handle(routepath.MCP, newMCPHandler(svc))
		extras = append(extras, routepath.MCP)
	}
	return module.Mount{
		Prefix:        routepath.Shader,
		ExtraPrefixes: extras,
		Handler:       mux,
	}, nil
}
