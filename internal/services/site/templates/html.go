// Package templates renders the site pages as templ components.
package templates

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/message"
)

// Localizer exposes translated formatting used by templates.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

type keyLocalizer struct{}

func (keyLocalizer) Sprintf(key message.Reference, _ ...any) string {
	if s, ok := key.(string); ok {
		return s
	}
	return ""
}

func localizer(loc Localizer) Localizer {
	if loc == nil {
		return keyLocalizer{}
	}
	return loc
}

// html accumulates markup and keeps the first write error.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(parts ...string) {
	for _, part := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, part)
	}
}

func (h *html) text(value string) {
	h.raw(templ.EscapeString(value))
}

func (h *html) attr(name, value string) {
	h.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (h *html) flag(name string, on bool) {
	if on {
		h.raw(" ", name)
	}
}

func (h *html) open(tag string, attrs ...string) {
	h.raw("<", tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		h.attr(attrs[i], attrs[i+1])
	}
	h.raw(">")
}

func (h *html) close(tag string) {
	h.raw("</", tag, ">")
}

func (h *html) element(tag string, content string, attrs ...string) {
	h.open(tag, attrs...)
	h.text(content)
	h.close(tag)
}

func (h *html) render(ctx context.Context, component templ.Component) {
	if h.err != nil || component == nil {
		return
	}
	h.err = component.Render(ctx, h.w)
}

func component(fn func(ctx context.Context, h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		fn(ctx, h)
		return h.err
	})
}

func classes(names ...string) string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return strings.Join(out, " ")
}

func itoa(value int) string {
	return strconv.Itoa(value)
}
