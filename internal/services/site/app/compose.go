// Package app composes site modules into the root HTTP handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/requestmeta"
)

// ComposeInput carries modules and their shared dependencies.
type ComposeInput struct {
	Dependencies module.Dependencies
	Modules      []module.Module
}

// Composer wires root mux mounts for every module.
type Composer struct{}

// Compose builds a root HTTP handler from modules. Each prefix may be owned
// by one module only.
func (Composer) Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)

	for _, feature := range input.Modules {
		if feature == nil {
			return nil, fmt.Errorf("module is nil")
		}
		mount, prefixes, err := resolveMount(feature, input.Dependencies)
		if err != nil {
			return nil, err
		}
		handler := requireSameOriginMutation(mount.Handler)
		for _, prefix := range prefixes {
			if err := mountPrefix(root, feature, prefix, handler, seen); err != nil {
				return nil, err
			}
		}
	}

	return root, nil
}

func mountPrefix(root *http.ServeMux, feature module.Module, prefix string, handler http.Handler, seen map[string]string) error {
	if previous, ok := seen[prefix]; ok {
		return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
	}
	seen[prefix] = feature.ID()
	root.Handle(prefix, handler)
	// "/events/" alone would redirect "/events" to the slash form.
	if exact := strings.TrimSuffix(prefix, "/"); exact != "" {
		root.Handle(exact, handler)
	}
	return nil
}

func resolveMount(feature module.Module, deps module.Dependencies) (module.Mount, []string, error) {
	if feature == nil {
		return module.Mount{}, nil, fmt.Errorf("module is nil")
	}
	mount, err := feature.Mount(deps)
	if err != nil {
		return module.Mount{}, nil, fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix := normalizePrefix(mount.Prefix)
	if prefix == "" {
		return module.Mount{}, nil, fmt.Errorf("mount module %q: prefix is required", feature.ID())
	}
	if mount.Handler == nil {
		return module.Mount{}, nil, fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	prefixes := []string{prefix}
	for _, extra := range mount.ExtraPrefixes {
		normalized := normalizePrefix(extra)
		if normalized == "" {
			return module.Mount{}, nil, fmt.Errorf("mount module %q: extra prefix is blank", feature.ID())
		}
		prefixes = append(prefixes, normalized)
	}
	return mount, prefixes, nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

// requireSameOriginMutation rejects browser mutations whose Origin or
// Referer names another site. Requests without either header are API
// clients and pass through.
func requireSameOriginMutation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isMutationMethod(r) || !requestmeta.HasBrowserOrigin(r) {
			next.ServeHTTP(w, r)
			return
		}
		if !requestmeta.HasSameOriginProof(r) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isMutationMethod(r *http.Request) bool {
	if r == nil {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
