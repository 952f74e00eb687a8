package surface

import (
	"math"
	"testing"

	"github.com/thinkinrocks/thinkin.rocks/internal/shader"
)

func TestFitSixteenByNine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		container Size
		want      Dimensions
	}{
		{name: "square container is width bound", container: Size{Width: 1000, Height: 1000}, want: Dimensions{Width: 1000, Height: 562}},
		{name: "exact match", container: Size{Width: 1600, Height: 900}, want: Dimensions{Width: 1600, Height: 900}},
		{name: "tall container is width bound", container: Size{Width: 400, Height: 1000}, want: Dimensions{Width: 400, Height: 225}},
		{name: "wide container is height bound", container: Size{Width: 2000, Height: 900}, want: Dimensions{Width: 1600, Height: 900}},
		{name: "fractional container floors", container: Size{Width: 801.7, Height: 1000.2}, want: Dimensions{Width: 801, Height: 450}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Fit(tc.container, shader.Aspect16x9); got != tc.want {
				t.Fatalf("Fit(%v) = %v, want %v", tc.container, got, tc.want)
			}
		})
	}
}

func TestFitOtherRatios(t *testing.T) {
	t.Parallel()

	if got, want := Fit(Size{Width: 1000, Height: 1000}, shader.Aspect4x3), (Dimensions{Width: 1000, Height: 750}); got != want {
		t.Fatalf("4:3 Fit = %v, want %v", got, want)
	}
	if got, want := Fit(Size{Width: 1200, Height: 600}, shader.Aspect4x3), (Dimensions{Width: 800, Height: 600}); got != want {
		t.Fatalf("4:3 Fit = %v, want %v", got, want)
	}
	if got, want := Fit(Size{Width: 500, Height: 300}, shader.Aspect1x1), (Dimensions{Width: 300, Height: 300}); got != want {
		t.Fatalf("1:1 Fit = %v, want %v", got, want)
	}
}

func TestFitFreeAndEmptyContainerPassThrough(t *testing.T) {
	t.Parallel()

	for _, container := range []Size{{Width: 1234, Height: 56}, {Width: 7, Height: 9000}, {Width: 640.9, Height: 480.2}} {
		want := Dimensions{Width: int(container.Width), Height: int(container.Height)}
		if got := Fit(container, shader.AspectFree); got != want {
			t.Fatalf("free Fit(%v) = %v, want %v", container, got, want)
		}
	}
	if got, want := Fit(Size{Width: 0, Height: 500}, shader.Aspect16x9), (Dimensions{Width: 0, Height: 500}); got != want {
		t.Fatalf("empty Fit = %v, want %v", got, want)
	}
	if got, want := Fit(Size{Width: 300, Height: 200}, shader.AspectRatio("21:9")), (Dimensions{Width: 300, Height: 200}); got != want {
		t.Fatalf("unknown ratio Fit = %v, want %v", got, want)
	}
}

func TestTargetRatio(t *testing.T) {
	t.Parallel()

	if ratio, ok := TargetRatio(shader.Aspect4x3); !ok || ratio != 4.0/3.0 {
		t.Fatalf("TargetRatio(4:3) = %v, %t", ratio, ok)
	}
	if _, ok := TargetRatio(shader.AspectFree); ok {
		t.Fatal("expected free to have no target ratio")
	}
}

func TestClampCapsEachSide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Size
		want Size
	}{
		{in: Size{Width: 1e12, Height: 1e12}, want: Size{Width: MaxSide, Height: MaxSide}},
		{in: Size{Width: 5120, Height: 1440}, want: Size{Width: MaxSide, Height: 1440}},
		{in: Size{Width: 1280.5, Height: 720}, want: Size{Width: 1280.5, Height: 720}},
		{in: Size{Width: math.Inf(1), Height: 0}, want: Size{Width: MaxSide, Height: 0}},
	}
	for _, tc := range tests {
		if got := tc.in.Clamp(); got != tc.want {
			t.Fatalf("%+v.Clamp() = %+v, want %+v", tc.in, got, tc.want)
		}
	}
	if got := Fit(Size{Width: 1e12, Height: 1e12}.Clamp(), shader.Aspect16x9); got != (Dimensions{Width: 4096, Height: 2304}) {
		t.Fatalf("Fit(clamped huge) = %+v, want 4096x2304", got)
	}
}
