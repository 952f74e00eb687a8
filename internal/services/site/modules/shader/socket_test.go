package shader

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	module "github.com/thinkinrocks/thinkin.rocks/internal/services/site/module"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader"
	"golang.org/x/net/websocket"
)

type socketTestMessage struct {
	Type    string         `json:"type"`
	Config  *shader.Config `json:"config"`
	Surface *struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"surface"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newSocketServer(t *testing.T) (*httptest.Server, *shader.Store) {
	t.Helper()
	store := shader.NewStore()
	mount, err := New().Mount(module.Dependencies{Shader: store, Pipeline: &fakePipeline{}})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	srv := httptest.NewServer(mount.Handler)
	t.Cleanup(srv.Close)
	return srv, store
}

func dialSocket(t *testing.T, srv *httptest.Server, origin string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/shader/ws"
	conn, err := websocket.Dial(wsURL, "", origin)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) socketTestMessage {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set read deadline: %v", err)
	}
	var msg socketTestMessage
	if err := websocket.JSON.Receive(conn, &msg); err != nil {
		t.Fatalf("receive message: %v", err)
	}
	return msg
}

func sendMessage(t *testing.T, conn *websocket.Conn, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}
	if _, err := conn.Write(data); err != nil {
		t.Fatalf("send message: %v", err)
	}
}

func TestSocketSendsInitialState(t *testing.T) {
	t.Parallel()

	srv, _ := newSocketServer(t)
	conn := dialSocket(t, srv, srv.URL)

	msg := readMessage(t, conn)
	if msg.Type != "shader.state" || msg.Config == nil {
		t.Fatalf("first message = %+v, want shader.state", msg)
	}
	if msg.Config.Dither.PixelSize != shader.Defaults().Dither.PixelSize {
		t.Fatalf("pixelSize = %d", msg.Config.Dither.PixelSize)
	}
}

func TestSocketBroadcastsStoreChanges(t *testing.T) {
	t.Parallel()

	srv, store := newSocketServer(t)
	sender := dialSocket(t, srv, srv.URL)
	watcher := dialSocket(t, srv, srv.URL)
	readMessage(t, sender)
	readMessage(t, watcher)

	sendMessage(t, sender, map[string]any{
		"type":  "shader.set",
		"group": "dither",
		"patch": map[string]any{"pixelSize": 9},
	})
	for _, conn := range []*websocket.Conn{sender, watcher} {
		msg := readMessage(t, conn)
		if msg.Type != "shader.state" || msg.Config == nil || msg.Config.Dither.PixelSize != 9 {
			t.Fatalf("broadcast = %+v, want pixelSize 9", msg)
		}
	}

	store.SetAspectRatio(shader.Aspect1x1)
	msg := readMessage(t, watcher)
	if msg.Config == nil || msg.Config.AspectRatio != shader.Aspect1x1 {
		t.Fatalf("store change broadcast = %+v", msg)
	}
}

func TestSocketResizeRepliesWithSurface(t *testing.T) {
	t.Parallel()

	srv, _ := newSocketServer(t)
	conn := dialSocket(t, srv, srv.URL)
	readMessage(t, conn)

	sendMessage(t, conn, map[string]any{"type": "shader.resize", "width": 1600, "height": 900})
	msg := readMessage(t, conn)
	if msg.Type != "shader.state" || msg.Surface == nil || msg.Surface.Width != 1600 || msg.Surface.Height != 900 {
		t.Fatalf("resize reply = %+v", msg)
	}
}

func TestSocketResizeCapsHugeContainer(t *testing.T) {
	t.Parallel()

	srv, _ := newSocketServer(t)
	conn := dialSocket(t, srv, srv.URL)
	readMessage(t, conn)

	sendMessage(t, conn, map[string]any{"type": "shader.resize", "width": 1e12, "height": 1e12})
	msg := readMessage(t, conn)
	if msg.Surface == nil || msg.Surface.Width != 4096 || msg.Surface.Height != 2304 {
		t.Fatalf("resize reply = %+v, want 4096x2304", msg.Surface)
	}
}

func TestSocketReportsErrors(t *testing.T) {
	t.Parallel()

	srv, store := newSocketServer(t)
	conn := dialSocket(t, srv, srv.URL)
	readMessage(t, conn)

	tests := []struct {
		payload any
		code    string
	}{
		{payload: map[string]any{"type": "shader.explode"}, code: "INVALID_ARGUMENT"},
		{payload: map[string]any{"type": "shader.set", "group": "bloom", "patch": map[string]any{"x": 1}}, code: "NOT_FOUND"},
		{payload: map[string]any{"type": "shader.aspect", "value": 3}, code: "INVALID_ARGUMENT"},
		{payload: map[string]any{"type": "shader.preset", "name": "neon"}, code: "NOT_FOUND"},
		{payload: map[string]any{"type": 5}, code: "INVALID_ARGUMENT"},
	}
	for _, tc := range tests {
		sendMessage(t, conn, tc.payload)
		msg := readMessage(t, conn)
		if msg.Type != "shader.error" || msg.Code != tc.code {
			t.Fatalf("reply to %v = %+v, want shader.error %s", tc.payload, msg, tc.code)
		}
	}
	if store.Snapshot() != shader.Defaults() {
		t.Fatal("rejected frames changed the config")
	}
}

func TestSocketRejectsCrossOrigin(t *testing.T) {
	t.Parallel()

	srv, _ := newSocketServer(t)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/shader/ws"
	conn, err := websocket.Dial(wsURL, "", "https://evil.example")
	if err == nil {
		_ = conn.Close()
		t.Fatal("expected cross-origin dial to fail")
	}
}

func TestSocketHubForgetsClosedPeers(t *testing.T) {
	t.Parallel()

	store := shader.NewStore()
	svc := newService(module.Dependencies{Shader: store, Pipeline: &fakePipeline{}})
	hub := newSocketHub(svc, nil)
	srv := httptest.NewServer(http.HandlerFunc(hub.handle))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"
	conn, err := websocket.Dial(wsURL, "", srv.URL)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	readMessage(t, conn)
	if got := hub.size(); got != 1 {
		t.Fatalf("size = %d, want 1", got)
	}
	_ = conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.size() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("size = %d after close, want 0", hub.size())
		}
		time.Sleep(10 * time.Millisecond)
	}
	store.SetScale(2)
}
