// Package surface computes render surface dimensions for a container under an
// aspect-ratio constraint.
package surface

import (
	"math"

	"github.com/thinkinrocks/thinkin.rocks/internal/shader"
)

// MaxSide bounds each side of an observed container.
const MaxSide = 4096

// Size is the available container space as reported by layout. Values may be
// fractional.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Empty reports whether the container has zero area.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Clamp caps each side at MaxSide. NaN and negative values are left for
// the caller to reject.
func (s Size) Clamp() Size {
	return Size{Width: math.Min(s.Width, MaxSide), Height: math.Min(s.Height, MaxSide)}
}

// Dimensions is a render surface size in whole pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether the surface has zero area.
func (d Dimensions) Empty() bool {
	return d.Width <= 0 || d.Height <= 0
}

// TargetRatio returns width/height for the selection. Free and unknown
// selections report ok=false.
func TargetRatio(selection shader.AspectRatio) (float64, bool) {
	num, den, ok := selection.Terms()
	if !ok {
		return 0, false
	}
	return float64(num) / float64(den), true
}

// Fit sizes the render surface for container under selection.
//
// A free selection or an empty container leaves the container size unchanged.
// Otherwise, a container proportionally wider than the target is bound by its
// height, and any other container is bound by its width. Results are floored
// to whole pixels.
func Fit(container Size, selection shader.AspectRatio) Dimensions {
	num, den, ok := selection.Terms()
	if !ok || container.Empty() {
		return floor(container.Width, container.Height)
	}
	// W/H > num/den, compared without dividing.
	if container.Width*float64(den) > container.Height*float64(num) {
		return floor(container.Height*float64(num)/float64(den), container.Height)
	}
	return floor(container.Width, container.Width*float64(den)/float64(num))
}

func floor(width, height float64) Dimensions {
	return Dimensions{
		Width:  clampInt(math.Floor(width)),
		Height: clampInt(math.Floor(height)),
	}
}

func clampInt(value float64) int {
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	if value > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(value)
}
