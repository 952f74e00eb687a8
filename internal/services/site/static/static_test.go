package static

import (
	"io/fs"
	"testing"
)

func TestFSContainsSiteAssets(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"css/site.css", "js/shader.js"} {
		data, err := fs.ReadFile(FS, name)
		if err != nil {
			t.Fatalf("ReadFile(%q) error = %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("ReadFile(%q) returned empty asset", name)
		}
	}
}
