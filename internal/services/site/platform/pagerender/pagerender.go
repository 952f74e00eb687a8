// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	apperrors "github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/errors"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/httpx"
	sitei18n "github.com/thinkinrocks/thinkin.rocks/internal/services/site/platform/i18n"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/templates"
)

// Page describes a full-page module response.
type Page struct {
	// TitleKey is a catalog key; an empty key uses the brand alone.
	TitleKey   string
	StatusCode int
	Active     string
	Background string
	Scripts    []string
	// Body builds the page fragment with the request localizer.
	Body func(loc templates.Localizer) templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// WritePage renders page inside the site layout. Rendering happens into a
// buffer so a template failure can still produce a clean error response.
func WritePage(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}

	loc, lang := sitei18n.ResolveLocalizer(w, r)
	var fragment templ.Component = emptyComponent{}
	if page.Body != nil {
		if body := page.Body(loc); body != nil {
			fragment = body
		}
	}
	title := ""
	if page.TitleKey != "" {
		title = loc.Sprintf(page.TitleKey)
	}
	layout := templates.Layout(templates.LayoutOptions{
		Title:      title,
		Lang:       lang,
		Active:     page.Active,
		Loc:        loc,
		Languages:  sitei18n.Languages(r, lang),
		Background: page.Background,
		Scripts:    page.Scripts,
	})

	var buf bytes.Buffer
	if err := layout.Render(templ.WithChildren(httpx.RequestContext(r), fragment), &buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err := buf.WriteTo(w)
	return err
}

// ShouldRenderErrorPage reports whether status should use the error-page UX.
func ShouldRenderErrorPage(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// WriteNotFound writes the localized 404 page.
func WriteNotFound(w http.ResponseWriter, r *http.Request) {
	writeStatusPage(w, r, http.StatusNotFound)
}

// WriteError writes a page-safe error response for err.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderErrorPage(statusCode) {
		writeStatusPage(w, r, statusCode)
		return
	}
	http.Error(w, PublicMessage(nil, err), statusCode)
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc templates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" && localized != key {
				return localized
			}
		}
	}
	return apperrors.PublicMessage(err)
}

func writeStatusPage(w http.ResponseWriter, r *http.Request, statusCode int) {
	if !ShouldRenderErrorPage(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	page := Page{
		TitleKey:   "core.error.title",
		StatusCode: statusCode,
		Body: func(loc templates.Localizer) templ.Component {
			return templates.ErrorState(loc)
		},
	}
	if statusCode == http.StatusNotFound {
		page.TitleKey = "core.notfound.title"
		page.Body = func(loc templates.Localizer) templ.Component {
			return templates.NotFound(loc)
		}
	}
	if err := WritePage(w, r, page); err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}
