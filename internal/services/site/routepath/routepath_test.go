package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if Health != "/healthz" {
		t.Fatalf("Health = %q", Health)
	}
	if APIEvents != "/api/events" {
		t.Fatalf("APIEvents = %q", APIEvents)
	}
	if APIApplications != "/api/applications" {
		t.Fatalf("APIApplications = %q", APIApplications)
	}
	if APIShaderSnapshot != "/api/shader/snapshot.png" {
		t.Fatalf("APIShaderSnapshot = %q", APIShaderSnapshot)
	}
	if APIShaderPreset != "/api/shader/presets/{name}" {
		t.Fatalf("APIShaderPreset = %q", APIShaderPreset)
	}
}

func TestRouteBuilders(t *testing.T) {
	t.Parallel()

	if got := EventsTab("past"); got != "/events?tab=past" {
		t.Fatalf("EventsTab() = %q", got)
	}
	if got := EventsTab(""); got != "/events" {
		t.Fatalf("EventsTab(empty) = %q", got)
	}
	if got := HardwareSearch("gpu box", []string{"ai", " ", "gpus"}); got != "/hardware?category=ai&category=gpus&q=gpu+box" {
		t.Fatalf("HardwareSearch() = %q", got)
	}
	if got := HardwareSearch("", nil); got != "/hardware" {
		t.Fatalf("HardwareSearch(empty) = %q", got)
	}
	if got := ShaderGroup("dither"); got != "/api/shader/dither" {
		t.Fatalf("ShaderGroup() = %q", got)
	}
	if got := ShaderPreset("marble"); got != "/api/shader/presets/marble" {
		t.Fatalf("ShaderPreset() = %q", got)
	}
	if got := ShaderPresetImage("marble", 640, 360); got != "/api/shader/presets/marble.png?h=360&w=640" {
		t.Fatalf("ShaderPresetImage() = %q", got)
	}
}
