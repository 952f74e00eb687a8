package shader

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetFlowFieldMergesOnlyNamedFields(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.SetFlowField(FlowFieldUpdate{Detail: Set(1.0), Speed: Set(2.0)})
	store.SetFlowField(FlowFieldUpdate{Speed: Set(5.0)})

	got := store.Snapshot().FlowField
	want := FlowField{Detail: 1, Speed: 5, Strength: Defaults().FlowField.Strength}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("flow field mismatch (-want +got):\n%s", diff)
	}
}

func TestSetGroupMergesJSONPatch(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if err := store.SetGroup(GroupDither, []byte(`{"pixelSize": 9, "visible": false}`)); err != nil {
		t.Fatalf("SetGroup() error = %v", err)
	}

	got := store.Snapshot().Dither
	want := Dither{ColorA: "#cfcfcf", Pattern: DitherBlueNoise, Visible: false, PixelSize: 9}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dither mismatch (-want +got):\n%s", diff)
	}
}

func TestSetGroupLeavesOtherGroupsUntouched(t *testing.T) {
	t.Parallel()

	store := NewStore()
	before := store.Snapshot()
	if err := store.SetGroup(GroupChromaticAberration, []byte(`{"angle": 90}`)); err != nil {
		t.Fatalf("SetGroup() error = %v", err)
	}
	after := store.Snapshot()
	after.ChromaticAberration = before.ChromaticAberration
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("unrelated groups changed (-before +after):\n%s", diff)
	}
}

func TestSetGroupPassesOutOfRangeValuesThrough(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if err := store.SetGroup(GroupDither, []byte(`{"pixelSize": -3}`)); err != nil {
		t.Fatalf("SetGroup() error = %v", err)
	}
	if err := store.SetGroup(GroupChromaticAberration, []byte(`{"angle": 725}`)); err != nil {
		t.Fatalf("SetGroup() error = %v", err)
	}
	got := store.Snapshot()
	if got.Dither.PixelSize != -3 {
		t.Fatalf("PixelSize = %d, want %d", got.Dither.PixelSize, -3)
	}
	if got.ChromaticAberration.Angle != 725 {
		t.Fatalf("Angle = %v, want %v", got.ChromaticAberration.Angle, 725.0)
	}
}

func TestSetGroupRejectsUnknownGroupAndFields(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if err := store.SetGroup(Group("sparkles"), []byte(`{}`)); err == nil {
		t.Fatal("expected unknown group error")
	}
	if err := store.SetGroup(GroupStripes, []byte(`{"colour": "#fff"}`)); err == nil {
		t.Fatal("expected unknown field error")
	}
	if err := store.SetGroup(GroupStripes, []byte(`not json`)); err == nil {
		t.Fatal("expected malformed json error")
	}
	if diff := cmp.Diff(Defaults(), store.Snapshot()); diff != "" {
		t.Fatalf("failed updates changed state (-want +got):\n%s", diff)
	}
}

func TestSetGroupRejectsMiscasedKeys(t *testing.T) {
	t.Parallel()

	store := NewStore()
	for _, body := range []string{
		`{"PIXELSIZE":1,"Visible":false}`,
		`{"pixelsize":1}`,
		`{"visible":false,"Pattern":"bayer4"}`,
	} {
		if err := store.SetGroup(GroupDither, []byte(body)); err == nil {
			t.Fatalf("SetGroup(dither, %s) = nil, want error", body)
		}
	}
	if err := store.SetGroup(GroupDither, []byte(`{"pixelSize":3,"visible":false}`)); err != nil {
		t.Fatalf("SetGroup(dither) exact keys: %v", err)
	}
	got := store.Snapshot().Dither
	if got.PixelSize != 3 || got.Visible {
		t.Fatalf("dither = %+v, want pixelSize 3 and hidden", got)
	}
}

func TestResetIsIdempotentAndMatchesDefaults(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.SetStripes(StripesUpdate{ColorA: Set("#000000")})
	store.SetAspectRatio(AspectFree)
	store.SetScale(1.8)

	store.Reset()
	once := store.Snapshot()
	store.Reset()
	twice := store.Snapshot()

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second reset differs (-once +twice):\n%s", diff)
	}
	if diff := cmp.Diff(Defaults(), twice); diff != "" {
		t.Fatalf("reset state differs from defaults (-want +got):\n%s", diff)
	}
}

func TestDefaultsMatchDocumentedSnapshot(t *testing.T) {
	t.Parallel()

	want := Config{
		FlowField:           FlowField{Detail: 1.2, Speed: 0, Strength: 0.25},
		Stripes:             Stripes{Balance: 0.1, ColorA: "#a6a6a6", Speed: 0.4},
		SimplexNoise:        SimplexNoise{Balance: 0.8, ColorB: "#e3c6f5", Contrast: 1, Speed: 1.1, Visible: false},
		Dither:              Dither{ColorA: "#cfcfcf", Pattern: DitherBlueNoise, Visible: true, PixelSize: 4},
		ImageTexture:        ImageTexture{ObjectFit: FitCover},
		ChromaticAberration: ChromaticAberration{Strength: 0.2, Angle: 0},
		AspectRatio:         Aspect16x9,
		Scale:               1,
	}
	if diff := cmp.Diff(want, Defaults()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestResetIgnoresCallerMutationOfDefaults(t *testing.T) {
	t.Parallel()

	defaults := Defaults()
	store := NewStoreWithDefaults(defaults)
	defaults.Stripes.ColorA = "#123456"

	store.SetStripes(StripesUpdate{Balance: Set(0.9)})
	store.Reset()
	if got := store.Snapshot().Stripes.ColorA; got != "#a6a6a6" {
		t.Fatalf("ColorA after reset = %q, want %q", got, "#a6a6a6")
	}
}

func TestImageURLRoundTripRestoresStripes(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.SetStripes(StripesUpdate{Balance: Set(0.55), ColorA: Set("#ff00aa"), Speed: Set(-0.3)})
	custom := store.Snapshot().Stripes

	if err := store.SetGroup(GroupImageTexture, []byte(`{"url": "https://example.com/rock.png"}`)); err != nil {
		t.Fatalf("set url: %v", err)
	}
	if got := store.Snapshot().BaseLayer(); got != "imageTexture" {
		t.Fatalf("BaseLayer() = %q, want %q", got, "imageTexture")
	}

	if err := store.SetGroup(GroupImageTexture, []byte(`{"url": null}`)); err != nil {
		t.Fatalf("clear url: %v", err)
	}
	snapshot := store.Snapshot()
	if snapshot.ImageTexture.HasImage() {
		t.Fatalf("url = %q, want absent", snapshot.ImageTexture.URL)
	}
	if got := snapshot.BaseLayer(); got != "stripes" {
		t.Fatalf("BaseLayer() = %q, want %q", got, "stripes")
	}
	if diff := cmp.Diff(custom, snapshot.Stripes); diff != "" {
		t.Fatalf("stripes changed (-want +got):\n%s", diff)
	}
}

func TestSubscribersNotifiedInOrderWithCommittedState(t *testing.T) {
	t.Parallel()

	store := NewStore()
	var calls []string
	var seen []AspectRatio
	store.Subscribe(func(c Config) {
		calls = append(calls, "first")
		seen = append(seen, c.AspectRatio)
	})
	store.Subscribe(func(c Config) {
		calls = append(calls, "second")
		if store.Snapshot().AspectRatio != c.AspectRatio {
			t.Errorf("listener saw uncommitted state")
		}
	})

	store.SetAspectRatio(Aspect4x3)
	store.Reset()

	if diff := cmp.Diff([]string{"first", "second", "first", "second"}, calls); diff != "" {
		t.Fatalf("call order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]AspectRatio{Aspect4x3, Aspect16x9}, seen); diff != "" {
		t.Fatalf("aspect ratios mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	t.Parallel()

	store := NewStore()
	count := 0
	unsubscribe := store.Subscribe(func(Config) { count++ })
	store.SetScale(2)
	unsubscribe()
	unsubscribe()
	store.SetScale(3)

	if count != 1 {
		t.Fatalf("count = %d, want %d", count, 1)
	}
}

func TestLoadPresetAndParseHelpers(t *testing.T) {
	t.Parallel()

	preset, ok := LookupPreset(" Marble ")
	if !ok {
		t.Fatal("expected marble preset")
	}
	store := NewStore()
	store.Load(preset.Config)
	if got := store.Snapshot().Dither.Pattern; got != DitherBayer2 {
		t.Fatalf("Pattern = %q, want %q", got, DitherBayer2)
	}
	if _, ok := LookupPreset("nope"); ok {
		t.Fatal("unexpected preset")
	}
	if diff := cmp.Diff([]string{"default", "marble"}, PresetNames()); diff != "" {
		t.Fatalf("preset names mismatch (-want +got):\n%s", diff)
	}

	if group, ok := ParseGroup("chromatic-aberration"); !ok || group != GroupChromaticAberration {
		t.Fatalf("ParseGroup() = %q, %t", group, ok)
	}
	if got := ParseAspectRatio(" FREE "); got != AspectFree {
		t.Fatalf("ParseAspectRatio() = %q, want %q", got, AspectFree)
	}
	if !DitherWhiteNoise.Known() || DitherPattern("plaid").Known() {
		t.Fatal("unexpected dither pattern Known() result")
	}
}

func TestTypedSettersMergeIntoTheirGroups(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.SetSimplexNoise(SimplexNoiseUpdate{Visible: Set(true), ColorB: Set("#112233")})
	store.SetImageTexture(ImageTextureUpdate{ObjectFit: Set(FitContain), Brightness: Set(-0.5)})
	store.SetChromaticAberration(ChromaticAberrationUpdate{Angle: Set(180.0)})

	want := Defaults()
	want.SimplexNoise.Visible = true
	want.SimplexNoise.ColorB = "#112233"
	want.ImageTexture.ObjectFit = FitContain
	want.ImageTexture.Brightness = -0.5
	want.ChromaticAberration.Angle = 180
	if diff := cmp.Diff(want, store.Snapshot()); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}
