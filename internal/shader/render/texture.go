package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTextureBytes   = 16 << 20
	defaultTextureEntries = 8
	defaultTextureTimeout = 15 * time.Second
)

// TextureLoader fetches and decodes image textures. Decoded textures are kept
// in a small cache keyed by URL.
type TextureLoader struct {
	client   *http.Client
	maxBytes int64
	group    singleflight.Group

	mu      sync.Mutex
	cache   map[string]*image.RGBA
	order   []string
	entries int
}

// NewTextureLoader returns a loader that fetches remote textures with client.
// A nil client uses a client with a fixed timeout.
func NewTextureLoader(client *http.Client) *TextureLoader {
	if client == nil {
		client = &http.Client{Timeout: defaultTextureTimeout}
	}
	return &TextureLoader{
		client:   client,
		maxBytes: defaultTextureBytes,
		cache:    make(map[string]*image.RGBA),
		entries:  defaultTextureEntries,
	}
}

// Load returns the decoded texture for rawURL. Supported sources are data:
// URLs and http(s) URLs; png, jpeg, gif and webp are decoded.
func (l *TextureLoader) Load(ctx context.Context, rawURL string) (*image.RGBA, error) {
	if l == nil {
		return nil, errors.New("texture loader is not configured")
	}
	l.mu.Lock()
	cached, ok := l.cache[rawURL]
	l.mu.Unlock()
	if ok {
		return cached, nil
	}

	result, err, _ := l.group.Do(rawURL, func() (any, error) {
		data, err := l.fetch(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		decoded, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode texture: %w", err)
		}
		texture := toRGBA(decoded)
		l.store(rawURL, texture)
		return texture, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*image.RGBA), nil
}

func (l *TextureLoader) store(key string, texture *image.RGBA) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.cache[key]; ok {
		return
	}
	if len(l.order) >= l.entries {
		oldest := l.order[0]
		l.order = l.order[1:]
		delete(l.cache, oldest)
	}
	l.cache[key] = texture
	l.order = append(l.order, key)
}

func (l *TextureLoader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	trimmed := strings.TrimSpace(rawURL)
	if strings.HasPrefix(strings.ToLower(trimmed), "data:") {
		return decodeDataURL(trimmed)
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse texture url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported texture scheme %q", parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build texture request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch texture: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch texture: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read texture: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("texture exceeds %d bytes", l.maxBytes)
	}
	return data, nil
}

// decodeDataURL reads the payload of data:[<mediatype>][;base64],<data>.
func decodeDataURL(raw string) ([]byte, error) {
	header, payload, ok := strings.Cut(raw[len("data:"):], ",")
	if !ok {
		return nil, errors.New("malformed data url")
	}
	if strings.HasSuffix(strings.ToLower(header), ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decode data url: %w", err)
		}
		return data, nil
	}
	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data url: %w", err)
	}
	return []byte(data), nil
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return dst
}
