package shader

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/thinkinrocks/thinkin.rocks/internal/platform/timeouts"
	apperrors "github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/errors"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/requestmeta"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader/surface"
	"go.uber.org/zap"
	"golang.org/x/net/websocket"
)

const (
	maxSocketPayloadBytes  = 16 * 1024
	maxFramesPerSecond     = 60
	maxDecodeErrorsPerConn = 3
)

// Frame types exchanged on the shader socket.
const (
	frameState  = "shader.state"
	frameError  = "shader.error"
	frameSet    = "shader.set"
	frameAspect = "shader.aspect"
	frameScale  = "shader.scale"
	frameReset  = "shader.reset"
	framePreset = "shader.preset"
	frameResize = "shader.resize"
)

// socketFrame is one client message. Fields beyond Type depend on the type.
type socketFrame struct {
	Type   string          `json:"type"`
	Group  string          `json:"group,omitempty"`
	Patch  json.RawMessage `json:"patch,omitempty"`
	Value  json.RawMessage `json:"value,omitempty"`
	Name   string          `json:"name,omitempty"`
	Width  float64         `json:"width,omitempty"`
	Height float64         `json:"height,omitempty"`
}

// socketMessage is one server message.
type socketMessage struct {
	Type    string              `json:"type"`
	Config  *shader.Config      `json:"config,omitempty"`
	Surface *surface.Dimensions `json:"surface,omitempty"`
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
}

type socketPeer struct {
	conn    *websocket.Conn
	encoder *json.Encoder
	writeMu sync.Mutex

	mu      sync.Mutex
	pending *shader.Config
	wake    chan struct{}
	done    chan struct{}
}

func newSocketPeer(conn *websocket.Conn) *socketPeer {
	return &socketPeer{
		conn:    conn,
		encoder: json.NewEncoder(conn),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (p *socketPeer) write(msg socketMessage) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	_ = p.conn.SetWriteDeadline(time.Now().Add(timeouts.SocketWrite))
	return p.encoder.Encode(msg)
}

// queueState replaces any unsent state with cfg. Slow peers only ever see
// the latest configuration.
func (p *socketPeer) queueState(cfg shader.Config) {
	p.mu.Lock()
	p.pending = &cfg
	p.mu.Unlock()
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// pump writes queued states until the peer is closed or a write fails.
func (p *socketPeer) pump() {
	for {
		select {
		case <-p.done:
			return
		case <-p.wake:
		}
		p.mu.Lock()
		cfg := p.pending
		p.pending = nil
		p.mu.Unlock()
		if cfg == nil {
			continue
		}
		if err := p.write(socketMessage{Type: frameState, Config: cfg}); err != nil {
			_ = p.conn.Close()
			return
		}
	}
}

func writeSocketError(peer *socketPeer, code string, message string) error {
	return peer.write(socketMessage{Type: frameError, Code: code, Message: message})
}

// socketHub fans store changes out to every connected tweaker.
type socketHub struct {
	service *service
	logger  *zap.Logger
	server  websocket.Server

	mu    sync.Mutex
	peers map[*socketPeer]struct{}
}

func newSocketHub(svc *service, logger *zap.Logger) *socketHub {
	if logger == nil {
		logger = zap.NewNop()
	}
	hub := &socketHub{
		service: svc,
		logger:  logger,
		peers:   make(map[*socketPeer]struct{}),
	}
	hub.server = websocket.Server{
		Handshake: checkSameOrigin,
		Handler:   hub.serve,
	}
	svc.store.Subscribe(hub.broadcast)
	return hub
}

// checkSameOrigin rejects cross-site upgrades; the socket mutates shared state.
func checkSameOrigin(config *websocket.Config, r *http.Request) error {
	if !requestmeta.HasSameOriginProof(r) {
		return errors.New("cross-origin websocket rejected")
	}
	origin, err := websocket.Origin(config, r)
	if err != nil {
		return err
	}
	config.Origin = origin
	return nil
}

func (h *socketHub) handle(w http.ResponseWriter, r *http.Request) {
	h.server.ServeHTTP(w, r)
}

func (h *socketHub) broadcast(cfg shader.Config) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for peer := range h.peers {
		peer.queueState(cfg)
	}
}

// join registers peer and queues the current state. The snapshot is taken
// under the hub lock so a concurrent broadcast cannot be overtaken by it.
func (h *socketHub) join(peer *socketPeer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.peers[peer] = struct{}{}
	peer.queueState(h.service.store.Snapshot())
}

func (h *socketHub) leave(peer *socketPeer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.peers[peer]; !ok {
		return
	}
	delete(h.peers, peer)
	close(peer.done)
}

// size reports the number of connected peers.
func (h *socketHub) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

func (h *socketHub) serve(conn *websocket.Conn) {
	conn.MaxPayloadBytes = maxSocketPayloadBytes
	peer := newSocketPeer(conn)
	h.join(peer)
	h.logger.Debug("shader socket connected", zap.Int("peers", h.size()))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		peer.pump()
	}()
	defer func() {
		h.leave(peer)
		_ = conn.Close()
		wg.Wait()
		h.logger.Debug("shader socket closed", zap.Int("peers", h.size()))
	}()

	decoder := json.NewDecoder(conn)
	windowStart := time.Now()
	framesInWindow := 0
	decodeErrors := 0

	for {
		var frame socketFrame
		if err := decoder.Decode(&frame); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return
			}
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &syntaxErr) && !errors.As(err, &typeErr) {
				return
			}
			decodeErrors++
			_ = writeSocketError(peer, "INVALID_ARGUMENT", "invalid frame payload")
			if decodeErrors >= maxDecodeErrorsPerConn {
				return
			}
			if syntaxErr != nil {
				decoder = json.NewDecoder(conn)
			}
			continue
		}
		decodeErrors = 0

		now := time.Now()
		if now.Sub(windowStart) >= time.Second {
			windowStart = now
			framesInWindow = 0
		}
		framesInWindow++
		if framesInWindow > maxFramesPerSecond {
			_ = writeSocketError(peer, "RESOURCE_EXHAUSTED", "rate limit exceeded")
			return
		}

		if err := h.dispatch(peer, frame); err != nil {
			code := "INVALID_ARGUMENT"
			if apperrors.KindOf(err) == apperrors.KindNotFound {
				code = "NOT_FOUND"
			}
			_ = writeSocketError(peer, code, apperrors.PublicMessage(err))
		}
	}
}

// dispatch applies one client frame. Successful mutations reach the peer
// through the store broadcast, except resize which only affects the surface.
func (h *socketHub) dispatch(peer *socketPeer, frame socketFrame) error {
	switch frame.Type {
	case frameSet:
		_, err := h.service.setGroup(frame.Group, frame.Patch)
		return err
	case frameAspect:
		var value string
		if err := json.Unmarshal(frame.Value, &value); err != nil {
			return apperrors.Wrap(apperrors.KindInvalidInput, "aspect ratio must be a string", err)
		}
		_, err := h.service.setAspectRatio(value)
		return err
	case frameScale:
		var value float64
		if err := json.Unmarshal(frame.Value, &value); err != nil {
			return apperrors.Wrap(apperrors.KindInvalidInput, "scale must be a number", err)
		}
		_, err := h.service.setScale(value)
		return err
	case frameReset:
		h.service.reset()
		return nil
	case framePreset:
		_, err := h.service.loadPreset(frame.Name)
		return err
	case frameResize:
		current, err := h.service.resize(surface.Size{Width: frame.Width, Height: frame.Height})
		if err != nil {
			return err
		}
		_ = peer.write(socketMessage{Type: frameState, Config: &current.Config, Surface: current.Surface})
		return nil
	default:
		return apperrors.E(apperrors.KindInvalidInput, "unsupported frame type")
	}
}
