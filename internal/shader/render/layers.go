package render

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader"
)

const (
	stripeFrequency = 8.0
	stripeEdge      = 0.015
	noiseFrequency  = 2.5
	noiseEdge       = 0.12
)

// displace moves point along a noise-driven angle field.
func displace(noise opensimplex.Noise, flow flowParams, point mgl64.Vec2, seconds float64) mgl64.Vec2 {
	if flow.strength == 0 {
		return point
	}
	frequency := flow.detail * 2
	n := noise.Eval3(point.X()*frequency, point.Y()*frequency, seconds*flow.speed*0.2)
	angle := n * 2 * math.Pi
	offset := mgl64.Vec2{math.Cos(angle), math.Sin(angle)}.Mul(flow.strength * 0.25)
	return point.Add(offset)
}

// stripeColor draws diagonal colorA bands on white; balance is the band
// coverage.
func stripeColor(stripes stripeParams, point mgl64.Vec2, seconds float64) mgl64.Vec3 {
	phase := fract((point.X()+point.Y())*stripeFrequency + seconds*stripes.speed)
	if stripes.balance <= 0 {
		return white
	}
	if stripes.balance >= 1 {
		return stripes.color
	}
	mask := smoothstep(stripes.balance-stripeEdge, stripes.balance+stripeEdge, phase)
	return mix(stripes.color, white, mask)
}

// compositeNoise blends colorB over base where the noise field exceeds
// 1-balance.
func compositeNoise(noise opensimplex.Noise, p noiseParams, base mgl64.Vec3, point mgl64.Vec2, seconds float64) mgl64.Vec3 {
	n := noise.Eval3(point.X()*noiseFrequency, point.Y()*noiseFrequency, seconds*p.speed*0.25)
	n = mgl64.Clamp((n-0.5)*p.contrast+0.5, 0, 1)
	threshold := 1 - p.balance
	mask := smoothstep(threshold-noiseEdge, threshold+noiseEdge, n)
	return mix(base, p.color, mask)
}

// sampleTexture maps uv (0..1 across the surface) into the texture under the
// object-fit mode and applies brightness and contrast. Areas outside the
// fitted image are white.
func sampleTexture(texture *image.RGBA, p imageParams, uv mgl64.Vec2, width, height int) mgl64.Vec3 {
	tb := texture.Bounds()
	tw, th := float64(tb.Dx()), float64(tb.Dy())
	if tw == 0 || th == 0 {
		return white
	}
	sw, sh := float64(width), float64(height)

	var tx, ty float64
	if p.fit == shader.FitFill {
		tx, ty = uv.X()*tw, uv.Y()*th
	} else {
		scale := fitScale(p.fit, sw, sh, tw, th)
		dw, dh := tw*scale, th*scale
		tx = (uv.X()*sw - (sw-dw)/2) / scale
		ty = (uv.Y()*sh - (sh-dh)/2) / scale
	}
	if tx < 0 || ty < 0 || tx >= tw || ty >= th {
		return white
	}

	offset := texture.PixOffset(tb.Min.X+int(tx), tb.Min.Y+int(ty))
	px := texture.Pix[offset : offset+4]
	alpha := float64(px[3]) / 255
	c := mgl64.Vec3{float64(px[0]) / 255, float64(px[1]) / 255, float64(px[2]) / 255}
	// Premultiplied over white.
	c = c.Add(white.Mul(1 - alpha))

	c = c.Sub(mgl64.Vec3{0.5, 0.5, 0.5}).Mul(1 + p.contrast).Add(mgl64.Vec3{0.5, 0.5, 0.5})
	c = c.Add(mgl64.Vec3{p.brightness, p.brightness, p.brightness})
	return mgl64.Vec3{mgl64.Clamp(c.X(), 0, 1), mgl64.Clamp(c.Y(), 0, 1), mgl64.Clamp(c.Z(), 0, 1)}
}

func fitScale(fit shader.ObjectFit, sw, sh, tw, th float64) float64 {
	switch fit {
	case shader.FitContain:
		return math.Min(sw/tw, sh/th)
	case shader.FitNone:
		return 1
	case shader.FitScaleDown:
		return math.Min(1, math.Min(sw/tw, sh/th))
	default:
		return math.Max(sw/tw, sh/th)
	}
}

// aberrationOffset returns the per-channel pixel shift for the frame.
func aberrationOffset(p aberrationParams, width, height int) mgl64.Vec2 {
	if p.strength == 0 {
		return mgl64.Vec2{}
	}
	distance := p.strength * float64(max(width, height)) * 0.01
	radians := mgl64.DegToRad(p.angle)
	return mgl64.Vec2{math.Cos(radians), math.Sin(radians)}.Mul(distance)
}

// sampleAberration reads red shifted forward and blue shifted back along
// offset. Green stays in place.
func sampleAberration(buf []mgl64.Vec3, width, height, x, y int, offset mgl64.Vec2) mgl64.Vec3 {
	center := buf[y*width+x]
	if offset.X() == 0 && offset.Y() == 0 {
		return center
	}
	red := buf[clampIndex(x, offset.X(), width)+clampIndex(y, offset.Y(), height)*width]
	blue := buf[clampIndex(x, -offset.X(), width)+clampIndex(y, -offset.Y(), height)*width]
	return mgl64.Vec3{red.X(), center.Y(), blue.Z()}
}

func clampIndex(i int, delta float64, limit int) int {
	return max(0, min(limit-1, i+int(math.Round(delta))))
}
