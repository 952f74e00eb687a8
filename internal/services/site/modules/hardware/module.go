// Package hardware serves the searchable hardware catalog.
package hardware

import (
	"fmt"
	"net/http"

	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/content"
	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
)

// Module provides hardware routes.
type Module struct{}

// New returns a hardware module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "hardware" }

// Mount wires hardware route handlers. Without a content source the embedded
// catalog is served.
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
	return module.Mount{Prefix: routepath.Hardware, Handler: mux}, nil
}
