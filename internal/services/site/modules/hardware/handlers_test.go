package hardware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/content"
	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
)

type staticSource struct {
	snapshot content.Snapshot
}

func (s staticSource) Snapshot() content.Snapshot { return s.snapshot }

var items = []content.HardwareItem{
	{ID: "gpu-01", Name: "GPU Workstation", Description: "Training box", Categories: []string{"gpus", "ai"}, Status: content.StatusAvailable, CloudinaryPublicID: "hardware/gpu-01"},
	{ID: "arm-01", Name: "Robot Arm", Description: "Six axis <arm>", Categories: []string{"robots"}, Status: content.StatusMaintenance},
	{ID: "rack-01", Name: "Compute Rack", Description: "Servers", Categories: []string{"servers"}, Status: content.StatusAvailable},
}

func serve(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	mount, err := New().Mount(module.Dependencies{Content: staticSource{snapshot: content.Snapshot{Hardware: items}}})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestCatalogListsEverythingByDefault(t *testing.T) {
	t.Parallel()

	rr := serve(t, "/hardware")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, marker := range []string{
		"3 of 3 items",
		"Six axis &lt;arm&gt;",
		`class="badge badge-maintenance"`,
		"https://res.cloudinary.com/dby6mmmff/image/upload/f_auto,q_auto,w_256/hardware/gpu-01",
		`href="/hardware?category=robots"`,
	} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
}

func TestCatalogFiltersByQueryAndCategory(t *testing.T) {
	t.Parallel()

	rr := serve(t, "/hardware?q=GPU&category=gpus&category=robots")
	body := rr.Body.String()
	if !strings.Contains(body, "1 of 3 items") || !strings.Contains(body, "GPU Workstation") {
		t.Fatalf("expected only the gpu workstation: %s", body)
	}
	if strings.Contains(body, "Robot Arm") {
		t.Fatal("robot arm should not match the query")
	}
	// The robots chip removes itself and keeps the query and the other category.
	if !strings.Contains(body, `href="/hardware?category=gpus&amp;q=GPU"`) {
		t.Fatalf("body missing toggle-off URL")
	}
}

func TestCatalogEmptyResult(t *testing.T) {
	t.Parallel()

	rr := serve(t, "/hardware?q=quantum")
	if !strings.Contains(rr.Body.String(), "No hardware matches your search.") {
		t.Fatal("body missing empty state")
	}
}

func TestCatalogFallsBackToEmbeddedContent(t *testing.T) {
	t.Parallel()

	mount, err := New().Mount(module.Dependencies{})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/hardware", nil))
	if !strings.Contains(rr.Body.String(), "Compute Rack 01") {
		t.Fatal("body missing embedded hardware")
	}
}

func TestToggleAndSelectedCategories(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff([]string{"ai", "gpus"}, selectedCategories([]string{" gpus", "ai", "gpus", ""})); diff != "" {
		t.Fatalf("selectedCategories mismatch (-want +got):\n%s", diff)
	}
	selected := []string{"ai", "gpus"}
	if diff := cmp.Diff([]string{"gpus"}, toggle(selected, "ai")); diff != "" {
		t.Fatalf("toggle off mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ai", "gpus", "robots"}, toggle(selected, "robots")); diff != "" {
		t.Fatalf("toggle on mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ai", "gpus"}, selected); diff != "" {
		t.Fatalf("toggle mutated input (-want +got):\n%s", diff)
	}
}
