// Package logbook serves the project log of announcements, milestones,
// events and updates.
package logbook

import (
	"fmt"
	"net/http"

	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/content"
	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
)

// Module provides log routes.
type Module struct{}

// New returns a log module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "log" }

// Mount wires log route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	source := deps.Content
	if source == nil {
		embedded, err := content.NewSource(deps.LoggerOrNop())
		if err != nil {
			return module.Mount{}, fmt.Errorf("load embedded content: %w", err)
		}
		source = embedded
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(source, deps))
	return module.Mount{Prefix: routepath.Log, Handler: mux}, nil
}
