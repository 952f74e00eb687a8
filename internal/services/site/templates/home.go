package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/routepath"
)

// HomeTab names a tab in the problem/solution window.
type HomeTab string

const (
	HomeTabProblem  HomeTab = "problem"
	HomeTabSolution HomeTab = "solution"
)

// ShowcaseCard is one tile in the "what we share" grid.
type ShowcaseCard struct {
	Title       string
	Description string
}

// HomeView is the data for the landing page.
type HomeView struct {
	Tab      HomeTab
	Showcase []ShowcaseCard
}

// Home renders the landing page body.
func Home(loc Localizer, view HomeView) templ.Component {
	return component(func(_ context.Context, h *html) {
		loc := localizer(loc)
		tab := view.Tab
		if tab != HomeTabProblem {
			tab = HomeTabSolution
		}

		h.raw(`<header class="hero">`)
		h.open("h1", "class", "hero-title")
		h.text("> " + loc.Sprintf("site.home.title"))
		h.raw(`<span class="cursor" aria-hidden="true"></span>`)
		h.close("h1")
		h.raw("</header>")

		h.raw(`<section class="window">`)
		h.raw(`<div class="window-bar"><span class="dot red"></span><span class="dot yellow"></span><span class="dot green"></span>`)
		for _, t := range []HomeTab{HomeTabProblem, HomeTabSolution} {
			h.open("a",
				"class", classes("window-tab", activeClass(t == tab)),
				"href", routepath.Root+"?tab="+string(t),
			)
			h.text(loc.Sprintf("site.home." + string(t) + ".tab"))
			h.close("a")
		}
		h.raw("</div>")
		h.open("article", "class", "window-body", "data-tab", string(tab))
		prefix := "site.home." + string(tab)
		h.element("h2", loc.Sprintf(prefix+".title"))
		h.element("p", loc.Sprintf(prefix+".body"))
		h.element("p", loc.Sprintf(prefix+".body2"))
		h.close("article")
		h.raw("</section>")

		h.raw(`<section class="vision">`)
		h.element("h2", loc.Sprintf("site.home.vision.title"))
		h.element("p", loc.Sprintf("site.home.vision.body"))
		h.raw("</section>")

		if len(view.Showcase) > 0 {
			h.raw(`<section class="showcase">`)
			h.element("h2", loc.Sprintf("site.home.showcase.title"))
			h.raw(`<ul class="card-grid">`)
			for _, card := range view.Showcase {
				h.raw(`<li class="card">`)
				h.element("h3", card.Title)
				h.element("p", card.Description)
				h.raw("</li>")
			}
			h.raw("</ul></section>")
		}

		h.raw(`<p class="cta">`)
		h.open("a", "class", "button primary", "href", routepath.Apply)
		h.text(loc.Sprintf("site.home.cta"))
		h.close("a")
		h.raw("</p>")
	})
}
