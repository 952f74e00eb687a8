package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
)

// NotFound renders the 404 page body.
func NotFound(loc Localizer) templ.Component {
	return statusPage(loc, "404", "core.notfound.title", "core.notfound.body")
}

// ErrorState renders the generic failure page body.
func ErrorState(loc Localizer) templ.Component {
	return statusPage(loc, "500", "core.error.title", "core.error.body")
}

func statusPage(loc Localizer, code, titleKey, bodyKey string) templ.Component {
	return component(func(_ context.Context, h *html) {
		loc := localizer(loc)
		h.raw(`<section class="status-page">`)
		h.element("p", code, "class", "status-code")
		h.element("h1", loc.Sprintf(titleKey))
		h.element("p", loc.Sprintf(bodyKey))
		h.open("a", "class", "button", "href", routepath.Root)
		h.text(loc.Sprintf("core.nav.home"))
		h.close("a")
		h.raw("</section>")
	})
}
