package preview

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
)

const (
	// SnapshotWidth is the fixed width of exported snapshots.
	SnapshotWidth = 1920
	// SnapshotFilename is the download name offered for snapshots.
	SnapshotFilename = "shader-snapshot.png"
)

// ScaleDimensions returns the export size for a width x height surface. Zero
// or negative sizes report ok=false.
func ScaleDimensions(width, height int) (int, int, bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	scale := float64(SnapshotWidth) / float64(width)
	scaled := int(math.Round(float64(height) * scale))
	return SnapshotWidth, max(1, scaled), true
}

// Export scales src to SnapshotWidth and writes it to w as PNG. A nil or
// empty src writes nothing and reports ok=false.
func Export(src *image.RGBA, w io.Writer) (bool, error) {
	if src == nil {
		return false, nil
	}
	bounds := src.Bounds()
	width, height, ok := ScaleDimensions(bounds.Dx(), bounds.Dy())
	if !ok {
		return false, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	if err := png.Encode(w, dst); err != nil {
		return false, fmt.Errorf("encode snapshot: %w", err)
	}
	return true, nil
}
