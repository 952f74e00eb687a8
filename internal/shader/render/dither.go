package render

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader"
)

var clusteredDot4 = [4][4]float64{
	{12, 5, 6, 13},
	{4, 0, 1, 7},
	{11, 3, 2, 8},
	{15, 10, 9, 14},
}

var (
	bayerOnce     sync.Once
	bayerMatrices map[int][][]float64
)

// bayer returns the normalized n×n ordered-dither matrix for n in {2,4,8}.
func bayer(n int) [][]float64 {
	bayerOnce.Do(func() {
		bayerMatrices = make(map[int][][]float64, 3)
		m := [][]int{{0, 2}, {3, 1}}
		for size := 2; size <= 8; size *= 2 {
			normalized := make([][]float64, size)
			for y := range m {
				normalized[y] = make([]float64, size)
				for x := range m[y] {
					normalized[y][x] = (float64(m[y][x]) + 0.5) / float64(size*size)
				}
			}
			bayerMatrices[size] = normalized
			if size < 8 {
				m = expandBayer(m)
			}
		}
	})
	return bayerMatrices[n]
}

func expandBayer(m [][]int) [][]int {
	n := len(m)
	out := make([][]int, 2*n)
	for y := range out {
		out[y] = make([]int, 2*n)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := 4 * m[y][x]
			out[y][x] = v
			out[y][x+n] = v + 2
			out[y+n][x] = v + 3
			out[y+n][x+n] = v + 1
		}
	}
	return out
}

// threshold returns the dither threshold in [0,1) for cell (cx, cy).
func threshold(pattern shader.DitherPattern, cx, cy, frame int) float64 {
	switch pattern {
	case shader.DitherBayer2:
		return bayer(2)[cy&1][cx&1]
	case shader.DitherBayer4:
		return bayer(4)[cy&3][cx&3]
	case shader.DitherBayer8:
		return bayer(8)[cy&7][cx&7]
	case shader.DitherClusteredDot:
		return (clusteredDot4[cy&3][cx&3] + 0.5) / 16
	case shader.DitherWhiteNoise:
		return hashUnit(uint32(cx), uint32(cy), uint32(frame))
	default:
		// Interleaved gradient noise.
		x, y := float64(cx)+0.5, float64(cy)+0.5
		return fract(52.9829189 * fract(0.06711056*x+0.00583715*y))
	}
}

// hashUnit maps integer coordinates to [0,1).
func hashUnit(x, y, z uint32) float64 {
	h := x*0x8da6b343 ^ y*0xd8163841 ^ z*0xcb1ab31f
	h ^= h >> 16
	h *= 0x7feb352d
	h ^= h >> 15
	h *= 0x846ca68b
	h ^= h >> 16
	return float64(h) / (math.MaxUint32 + 1.0)
}

// applyDither quantizes pixel (x, y) to white or the ink color. Pixels are
// grouped into pixelSize blocks that share a sample and a threshold.
func applyDither(p ditherParams, src []mgl64.Vec3, width, height, x, y, frame int) mgl64.Vec3 {
	cx, cy := x/p.pixelSize, y/p.pixelSize
	sx := min(width-1, cx*p.pixelSize+p.pixelSize/2)
	sy := min(height-1, cy*p.pixelSize+p.pixelSize/2)
	if luminance(src[sy*width+sx]) >= threshold(p.pattern, cx, cy, frame) {
		return white
	}
	return p.color
}
