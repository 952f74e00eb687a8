// Package modules lists the site feature modules in mount order.
package modules

import (
	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/modules/applications"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/modules/events"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/modules/hardware"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/modules/logbook"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/modules/public"
	shadermodule "github.com/thinkinrocks/thinkin.rocks/internal/services/site/modules/shader"
)

// Dependencies aliases the shared module dependencies type.
type Dependencies = module.Dependencies

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Default returns every site module.
func Default() []Module {
	return []Module{
		public.New(),
		events.New(),
		hardware.New(),
		logbook.New(),
		applications.New(),
		shadermodule.New(),
	}
}
