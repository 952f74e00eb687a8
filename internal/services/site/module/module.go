// Package module defines the contract shared by site feature modules.
package module

import (
	"context"
	"net/http"
	"time"

	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/content"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/integration/luma"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/storage"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader/preview"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader/render"
	"go.uber.org/zap"
)

// Module is one mountable feature area of the site.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}

// Mount is a module's root prefix and handler. ExtraPrefixes are owned by the
// same handler, for modules that serve both pages and an API tree.
type Mount struct {
	Prefix        string
	ExtraPrefixes []string
	Handler       http.Handler
}

// EventSource lists calendar entries for the events module.
type EventSource interface {
	CalendarConfigured() bool
	ListEvents(ctx context.Context) ([]luma.Entry, error)
}

// ContentSource exposes the current hardware and log content.
type ContentSource interface {
	Snapshot() content.Snapshot
}

// Dependencies carries shared services into modules.
type Dependencies struct {
	Logger       *zap.Logger
	Applications storage.ApplicationStore
	Events       EventSource
	Content      ContentSource
	Shader       *shader.Store
	Preview      *preview.Renderer
	Pipeline     render.Pipeline
	MCPEnabled   bool
	Now          func() time.Time
}

// LoggerOrNop returns deps.Logger or a no-op logger.
func (d Dependencies) LoggerOrNop() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// Clock returns deps.Now or time.Now.
func (d Dependencies) Clock() func() time.Time {
	if d.Now == nil {
		return time.Now
	}
	return d.Now
}
